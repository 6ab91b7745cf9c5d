package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/ports"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
	gwmemory "github.com/Apurer/go-gin-adoption-server/internal/gateway/memory"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.EventName())
	}
	return names
}

type fixture struct {
	gw        *gwmemory.Gateway
	svc       *Service
	publisher *recordingPublisher
	users     []int64
	pet       int64
}

func newFixture(t *testing.T, userCount int) *fixture {
	t.Helper()
	fx := &fixture{gw: gwmemory.NewGateway(), publisher: &recordingPublisher{}}
	fx.svc = NewService(fx.gw,
		WithEventPublisher(fx.publisher),
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }),
	)
	err := fx.gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		for i := 0; i < userCount; i++ {
			user, err := tx.Users().Create(ctx, &accountsdomain.User{
				Username:     "user",
				Email:        string(rune('a'+i)) + "@example.com",
				PasswordHash: "x",
				Role:         accountsdomain.RoleAdopter,
			})
			if err != nil {
				return err
			}
			fx.users = append(fx.users, user.ID)
		}
		pet, err := tx.Pets().Create(ctx, &catalogdomain.Pet{Name: "Rex", Available: true})
		if err != nil {
			return err
		}
		fx.pet = pet.ID
		return nil
	})
	require.NoError(t, err)
	return fx
}

func (fx *fixture) petAvailable(t *testing.T) bool {
	t.Helper()
	var available bool
	err := fx.gw.WithinTx(context.Background(), func(ctx context.Context, tx gateway.Tx) error {
		pet, err := tx.Pets().GetByID(ctx, fx.pet)
		if err != nil {
			return err
		}
		available = pet.Available
		return nil
	})
	require.NoError(t, err)
	return available
}

func TestApplyApproveScenario(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()
	user := fx.users[0]

	adoption, err := fx.svc.Apply(ctx, user, fx.pet)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, adoption.Status)
	assert.False(t, fx.petAvailable(t))

	approved, err := fx.svc.Approve(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.False(t, fx.petAvailable(t))

	_, err = fx.svc.Apply(ctx, user, fx.pet)
	require.ErrorIs(t, err, failure.ErrConflict)

	assert.Equal(t, []string{"adoptions.adoption.requested", "adoptions.adoption.approved"}, fx.publisher.names())
}

func TestApplyUnavailablePet(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()

	_, err := fx.svc.Apply(ctx, fx.users[0], fx.pet)
	require.NoError(t, err)

	_, err = fx.svc.Apply(ctx, fx.users[1], fx.pet)
	require.ErrorIs(t, err, failure.ErrInvalidState)
	require.ErrorIs(t, err, domain.ErrPetUnavailable)
}

func TestApplyUnknownReferences(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()

	_, err := fx.svc.Apply(ctx, 999, fx.pet)
	require.ErrorIs(t, err, failure.ErrNotFound)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = fx.svc.Apply(ctx, fx.users[0], 999)
	require.ErrorIs(t, err, failure.ErrNotFound)
	require.ErrorIs(t, err, domain.ErrPetNotFound)

	_, err = fx.svc.Apply(ctx, 0, fx.pet)
	require.ErrorIs(t, err, failure.ErrValidation)
}

func TestApproveIsNoopUnlessPending(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()

	adoption, err := fx.svc.Apply(ctx, fx.users[0], fx.pet)
	require.NoError(t, err)
	_, err = fx.svc.Reject(ctx, adoption.ID)
	require.NoError(t, err)

	again, err := fx.svc.Approve(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, again.Status)

	again, err = fx.svc.Approve(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, again.Status)
	assert.True(t, fx.petAvailable(t))

	assert.Equal(t, []string{"adoptions.adoption.requested", "adoptions.adoption.rejected"}, fx.publisher.names())
}

func TestRejectRelistsPet(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()

	adoption, err := fx.svc.Apply(ctx, fx.users[0], fx.pet)
	require.NoError(t, err)

	rejected, err := fx.svc.Reject(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.True(t, fx.petAvailable(t))

	_, err = fx.svc.Reject(ctx, 404)
	require.ErrorIs(t, err, failure.ErrNotFound)
}

func TestCancelKeepsPetUnavailable(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()
	owner := ports.Actor{UserID: fx.users[0]}
	stranger := ports.Actor{UserID: fx.users[1]}

	adoption, err := fx.svc.Apply(ctx, owner.UserID, fx.pet)
	require.NoError(t, err)
	_, err = fx.svc.Approve(ctx, adoption.ID)
	require.NoError(t, err)

	_, err = fx.svc.Cancel(ctx, adoption.ID, stranger)
	require.ErrorIs(t, err, failure.ErrForbidden)

	cancelled, err := fx.svc.Cancel(ctx, adoption.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.False(t, fx.petAvailable(t))

	names := fx.publisher.names()
	require.Len(t, names, 3)
	last := fx.publisher.events[2].(domain.AdoptionCancelled)
	assert.Equal(t, domain.StatusApproved, last.PreviousStatus)
}

func TestCancelByAdmin(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()

	adoption, err := fx.svc.Apply(ctx, fx.users[0], fx.pet)
	require.NoError(t, err)

	cancelled, err := fx.svc.Cancel(ctx, adoption.ID, ports.Actor{UserID: 42, Admin: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	_, err = fx.svc.Cancel(ctx, 0, ports.Actor{Admin: true})
	require.ErrorIs(t, err, failure.ErrValidation)
	_, err = fx.svc.Cancel(ctx, 999, ports.Actor{Admin: true})
	require.ErrorIs(t, err, failure.ErrNotFound)
}

func TestListFiltersByUserAndStatus(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()

	adoption, err := fx.svc.Apply(ctx, fx.users[0], fx.pet)
	require.NoError(t, err)

	pending := domain.StatusPending
	list, err := fx.svc.List(ctx, domain.Filter{UserID: &fx.users[0], Status: &pending})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, adoption.ID, list[0].ID)

	other := int64(999)
	list, err = fx.svc.List(ctx, domain.Filter{UserID: &other})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := fx.svc.Get(ctx, adoption.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.pet, got.PetID)
}

func TestConcurrentApplicationsHaveOneWinner(t *testing.T) {
	const applicants = 8
	fx := newFixture(t, applicants)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for _, user := range fx.users {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			if _, err := fx.svc.Apply(context.Background(), user, fx.pet); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, failure.ErrInvalidState)
			}
		}(user)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.False(t, fx.petAvailable(t))
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, domain.Event) error {
	return errors.New("broker unavailable")
}

func TestPublishFailureIsLogged(t *testing.T) {
	fx := newFixture(t, 1)
	var buf bytes.Buffer
	svc := NewService(fx.gw,
		WithEventPublisher(failingPublisher{}),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)

	adoption, err := svc.Apply(context.Background(), fx.users[0], fx.pet)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, adoption.Status)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "failed to publish adoption event", entry["msg"])
	assert.Equal(t, "adoptions.adoption.requested", entry["event"])
	assert.Equal(t, "broker unavailable", entry["error"])
}
