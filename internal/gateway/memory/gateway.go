// Package memory implements the persistence gateway in process memory.
// Transactions are serialised by a single mutex and run against a copy of the
// state that replaces the committed state only when the callback succeeds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway is an in-memory gateway.Gateway. WithinTx is not reentrant.
type Gateway struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// Option customises the gateway.
type Option func(*Gateway)

// WithClock overrides the time source used for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGateway returns an empty gateway.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{state: newState(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// WithinTx runs fn against a private copy of the state and commits it when fn
// returns nil.
func (g *Gateway) WithinTx(ctx context.Context, fn func(ctx context.Context, tx gateway.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	working := g.state.clone()
	if err := fn(ctx, &txScope{s: working, now: g.now}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.state = working
	return nil
}

type sequences struct {
	users     int64
	petTypes  int64
	pets      int64
	adoptions int64
	reviews   int64
}

type state struct {
	users     map[int64]accountsdomain.User
	petTypes  map[int64]catalogdomain.PetType
	pets      map[int64]catalogdomain.Pet
	adoptions map[int64]adoptionsdomain.Adoption
	reviews   map[int64]reviewsdomain.Review
	seq       sequences
}

func newState() *state {
	return &state{
		users:     map[int64]accountsdomain.User{},
		petTypes:  map[int64]catalogdomain.PetType{},
		pets:      map[int64]catalogdomain.Pet{},
		adoptions: map[int64]adoptionsdomain.Adoption{},
		reviews:   map[int64]reviewsdomain.Review{},
	}
}

// clone copies the maps. Stored values are never mutated in place, so sharing
// their pointer fields between copies is safe.
func (s *state) clone() *state {
	c := &state{
		users:     make(map[int64]accountsdomain.User, len(s.users)),
		petTypes:  make(map[int64]catalogdomain.PetType, len(s.petTypes)),
		pets:      make(map[int64]catalogdomain.Pet, len(s.pets)),
		adoptions: make(map[int64]adoptionsdomain.Adoption, len(s.adoptions)),
		reviews:   make(map[int64]reviewsdomain.Review, len(s.reviews)),
		seq:       s.seq,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.petTypes {
		c.petTypes[k] = v
	}
	for k, v := range s.pets {
		c.pets[k] = v
	}
	for k, v := range s.adoptions {
		c.adoptions[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	return c
}

type txScope struct {
	s   *state
	now func() time.Time
}

func (t *txScope) Users() gateway.Users         { return usersStore{t} }
func (t *txScope) PetTypes() gateway.PetTypes   { return petTypesStore{t} }
func (t *txScope) Pets() gateway.Pets           { return petsStore{t} }
func (t *txScope) Adoptions() gateway.Adoptions { return adoptionsStore{t} }
func (t *txScope) Reviews() gateway.Reviews     { return reviewsStore{t} }

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
