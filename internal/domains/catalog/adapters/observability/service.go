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

	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) AddPetType(ctx context.Context, name, description string) (*catalogdomain.PetType, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddPetType", trace.WithAttributes(attribute.String("pet_type.name", name)))
	defer span.End()
	result, err := s.inner.AddPetType(ctx, name, description)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add pet type", slog.String("type_name", name))
	}
	s.logInfo(ctx, "pet type added", slog.Int64("pet_type_id", result.ID), slog.String("type_name", result.Name))
	return result, nil
}

func (s *Service) ListPetTypes(ctx context.Context) ([]*catalogdomain.PetType, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListPetTypes")
	defer span.End()
	result, err := s.inner.ListPetTypes(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pet types")
	}
	return result, nil
}

func (s *Service) DeletePetType(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeletePetType", trace.WithAttributes(attribute.Int64("pet_type.id", id)))
	defer span.End()
	if err := s.inner.DeletePetType(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete pet type", slog.Int64("pet_type_id", id))
	}
	s.logInfo(ctx, "pet type deleted", slog.Int64("pet_type_id", id))
	return nil
}

func (s *Service) AddPet(ctx context.Context, input catalogports.AddPetInput) (*catalogdomain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddPet", trace.WithAttributes(
		attribute.String("pet.name", input.Name),
		attribute.Bool("pet.has_image", input.Image != nil),
	))
	defer span.End()
	s.logInfo(ctx, "adding pet", slog.String("name", input.Name))
	result, err := s.inner.AddPet(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add pet", slog.String("name", input.Name))
	}
	span.SetAttributes(attribute.Int64("pet.id", result.ID))
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "pet added", slog.Int64("pet_id", result.ID))
	return result, nil
}

func (s *Service) ListPets(ctx context.Context, filter catalogdomain.PetFilter) ([]*catalogdomain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListPets", trace.WithAttributes(attribute.Bool("filter.available_only", filter.AvailableOnly)))
	defer span.End()
	result, err := s.inner.ListPets(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.count", len(result)))
	return result, nil
}

func (s *Service) GetPet(ctx context.Context, id int64) (*catalogdomain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetPet", trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer span.End()
	return s.inner.GetPet(ctx, id)
}

func (s *Service) DeletePet(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeletePet", trace.WithAttributes(attribute.Int64("pet.id", id)))
	defer span.End()
	if err := s.inner.DeletePet(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete pet", slog.Int64("pet_id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "pet deleted", slog.Int64("pet_id", id))
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
	petsAdded   metric.Int64Counter
	petsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("catalog.service.pets_added", metric.WithDescription("Number of pets listed"))
	deleted, _ := m.Int64Counter("catalog.service.pets_deleted", metric.WithDescription("Number of pets removed"))
	return serviceMetrics{petsAdded: added, petsDeleted: deleted}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.petsAdded != nil {
		m.petsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.petsDeleted != nil {
		m.petsDeleted.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ catalogports.Service = (*Service)(nil)
