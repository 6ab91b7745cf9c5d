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

	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	adoptionsports "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoption workflow with tracing, logging, and metrics.
type Service struct {
	inner   adoptionsports.Service
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

// New wraps the core adoption service.
func New(inner adoptionsports.Service, opts ...Option) adoptionsports.Service {
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

func (s *Service) Apply(ctx context.Context, userID, petID int64) (*adoptionsdomain.Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Apply", trace.WithAttributes(
		attribute.Int64("user.id", userID),
		attribute.Int64("pet.id", petID),
	))
	defer span.End()
	s.logInfo(ctx, "adoption requested", slog.Int64("user_id", userID), slog.Int64("pet_id", petID))
	result, err := s.inner.Apply(ctx, userID, petID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to apply for adoption", slog.Int64("user_id", userID), slog.Int64("pet_id", petID))
	}
	span.SetAttributes(attribute.Int64("adoption.id", result.ID))
	s.metrics.recordTransition(ctx, result.Status)
	return result, nil
}

func (s *Service) Approve(ctx context.Context, adoptionID int64) (*adoptionsdomain.Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Approve", trace.WithAttributes(attribute.Int64("adoption.id", adoptionID)))
	defer span.End()
	result, err := s.inner.Approve(ctx, adoptionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to approve adoption", slog.Int64("adoption_id", adoptionID))
	}
	s.observeDecision(ctx, span, result, adoptionsdomain.StatusApproved)
	return result, nil
}

func (s *Service) Reject(ctx context.Context, adoptionID int64) (*adoptionsdomain.Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Reject", trace.WithAttributes(attribute.Int64("adoption.id", adoptionID)))
	defer span.End()
	result, err := s.inner.Reject(ctx, adoptionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to reject adoption", slog.Int64("adoption_id", adoptionID))
	}
	s.observeDecision(ctx, span, result, adoptionsdomain.StatusRejected)
	return result, nil
}

func (s *Service) Cancel(ctx context.Context, adoptionID int64, actor adoptionsports.Actor) (*adoptionsdomain.Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Cancel", trace.WithAttributes(
		attribute.Int64("adoption.id", adoptionID),
		attribute.Int64("actor.id", actor.UserID),
		attribute.Bool("actor.admin", actor.Admin),
	))
	defer span.End()
	result, err := s.inner.Cancel(ctx, adoptionID, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel adoption", slog.Int64("adoption_id", adoptionID))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "adoption cancelled", slog.Int64("adoption_id", adoptionID), slog.Int64("actor_id", actor.UserID))
	return result, nil
}

func (s *Service) Get(ctx context.Context, adoptionID int64) (*adoptionsdomain.Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Get", trace.WithAttributes(attribute.Int64("adoption.id", adoptionID)))
	defer span.End()
	return s.inner.Get(ctx, adoptionID)
}

func (s *Service) List(ctx context.Context, filter adoptionsdomain.Filter) ([]*adoptionsdomain.Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.List")
	defer span.End()
	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoptions")
	}
	span.SetAttributes(attribute.Int("adoption.count", len(result)))
	return result, nil
}

// observeDecision counts only real transitions; a repeated approve or reject is a no-op.
func (s *Service) observeDecision(ctx context.Context, span trace.Span, result *adoptionsdomain.Adoption, target adoptionsdomain.Status) {
	span.SetAttributes(attribute.String("adoption.status", string(result.Status)))
	if !result.Status.Is(target) {
		s.logInfo(ctx, "adoption decision ignored", slog.Int64("adoption_id", result.ID), slog.String("status", string(result.Status)))
		return
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "adoption decided", slog.Int64("adoption_id", result.ID), slog.String("status", string(result.Status)))
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
	transitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	transitions, _ := m.Int64Counter("adoptions.service.transitions", metric.WithDescription("Number of adoption status transitions"))
	return serviceMetrics{transitions: transitions}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status adoptionsdomain.Status) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ adoptionsports.Service = (*Service)(nil)
