package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/observability/service"

// Service decorates the account service with tracing, logging, and metrics.
type Service struct {
	inner   accountsports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core account service.
func New(inner accountsports.Service, opts ...Option) accountsports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input accountsports.RegisterInput) (*accountsdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.Register", trace.WithAttributes(
		attribute.String("user.username", input.Username),
		attribute.String("user.role", input.Role),
	))
	defer span.End()
	s.logInfo(ctx, "registering user", slog.String("username", input.Username), slog.String("role", input.Role))
	user, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("username", input.Username))
	}
	s.metrics.recordRegistered(ctx, string(user.Role))
	s.logInfo(ctx, "user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*accountsdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.Login")
	defer span.End()
	session, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.Int64("user.id", session.Identity.UserID))
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user logged in", slog.Int64("user_id", session.Identity.UserID))
	return session, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (accountsdomain.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.Authenticate")
	defer span.End()
	identity, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return identity, err
	}
	span.SetAttributes(attribute.Int64("user.id", identity.UserID))
	return identity, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "AccountService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*accountsdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.ListUsers")
	defer span.End()
	users, err := s.inner.ListUsers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*accountsdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountService.GetUser", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	return s.inner.GetUser(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, actor accountsdomain.Identity, id int64) error {
	ctx, span := s.tracer.Start(ctx, "AccountService.DeleteUser", trace.WithAttributes(
		attribute.Int64("user.id", id),
		attribute.Int64("actor.id", actor.UserID),
	))
	defer span.End()
	if err := s.inner.DeleteUser(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.Int64("user_id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "user deleted", slog.Int64("user_id", id), slog.Int64("actor_id", actor.UserID))
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	registered metric.Int64Counter
	deleted    metric.Int64Counter
	logins     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("accounts.service.registered", metric.WithDescription("Number of accounts registered"))
	deleted, _ := m.Int64Counter("accounts.service.deleted", metric.WithDescription("Number of accounts deleted"))
	logins, _ := m.Int64Counter("accounts.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{registered: registered, deleted: deleted, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, role string) {
	if m.registered != nil {
		m.registered.Add(ctx, 1, metric.WithAttributes(attribute.String("role", role)))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ accountsports.Service = (*Service)(nil)
