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

	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	reviewsports "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/adapters/observability/service"

// Service decorates the review service with tracing, logging, and metrics.
type Service struct {
	inner   reviewsports.Service
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

// New wraps the core review service.
func New(inner reviewsports.Service, opts ...Option) reviewsports.Service {
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

func (s *Service) Submit(ctx context.Context, input reviewsports.SubmitInput) (*reviewsdomain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.Submit", trace.WithAttributes(
		attribute.Int64("user.id", input.UserID),
		attribute.Int64("pet.id", input.PetID),
	))
	defer span.End()
	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit review", slog.Int64("user_id", input.UserID), slog.Int64("pet_id", input.PetID))
	}
	s.metrics.recordSubmitted(ctx, result.Rating)
	s.logInfo(ctx, "review submitted", slog.Int64("review_id", result.ID), slog.Int64("pet_id", result.PetID))
	return result, nil
}

func (s *Service) List(ctx context.Context, filter reviewsdomain.Filter) ([]*reviewsdomain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "ReviewService.List")
	defer span.End()
	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list reviews")
	}
	return result, nil
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
	submitted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("reviews.service.submitted", metric.WithDescription("Number of reviews submitted"))
	return serviceMetrics{submitted: submitted}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, rating int) {
	if m.submitted != nil {
		m.submitted.Add(ctx, 1, metric.WithAttributes(attribute.Int("rating", rating)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ reviewsports.Service = (*Service)(nil)
