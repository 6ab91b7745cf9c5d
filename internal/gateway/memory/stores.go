package memory

import (
	"context"
	"errors"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

type usersStore struct{ t *txScope }

func (u usersStore) Create(_ context.Context, user *accountsdomain.User) (*accountsdomain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	email := accountsdomain.NormalizeEmail(user.Email)
	for _, existing := range u.t.s.users {
		if existing.Email == email {
			return nil, gateway.ErrDuplicate
		}
	}
	clone := *user
	clone.Email = email
	u.t.s.seq.users++
	clone.ID = u.t.s.seq.users
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = u.t.now()
	}
	u.t.s.users[clone.ID] = clone
	return &clone, nil
}

func (u usersStore) GetByID(_ context.Context, id int64) (*accountsdomain.User, error) {
	user, ok := u.t.s.users[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &user, nil
}

func (u usersStore) GetByEmail(_ context.Context, email string) (*accountsdomain.User, error) {
	email = accountsdomain.NormalizeEmail(email)
	for _, id := range sortedKeys(u.t.s.users) {
		if user := u.t.s.users[id]; user.Email == email {
			return &user, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (u usersStore) List(_ context.Context) ([]*accountsdomain.User, error) {
	list := make([]*accountsdomain.User, 0, len(u.t.s.users))
	for _, id := range sortedKeys(u.t.s.users) {
		user := u.t.s.users[id]
		list = append(list, &user)
	}
	return list, nil
}

func (u usersStore) Delete(_ context.Context, id int64) error {
	s := u.t.s
	if _, ok := s.users[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(s.users, id)
	for aid, a := range s.adoptions {
		if a.UserID == id {
			delete(s.adoptions, aid)
		}
	}
	for rid, r := range s.reviews {
		if r.UserID == id {
			delete(s.reviews, rid)
		}
	}
	for pid, p := range s.pets {
		if p.CreatedBy != nil && *p.CreatedBy == id {
			p.CreatedBy = nil
			s.pets[pid] = p
		}
	}
	return nil
}

type petTypesStore struct{ t *txScope }

func (p petTypesStore) Create(_ context.Context, petType *catalogdomain.PetType) (*catalogdomain.PetType, error) {
	if petType == nil {
		return nil, errors.New("pet type is nil")
	}
	for _, existing := range p.t.s.petTypes {
		if existing.Name == petType.Name {
			return nil, gateway.ErrDuplicate
		}
	}
	clone := *petType
	p.t.s.seq.petTypes++
	clone.ID = p.t.s.seq.petTypes
	p.t.s.petTypes[clone.ID] = clone
	return &clone, nil
}

func (p petTypesStore) GetByID(_ context.Context, id int64) (*catalogdomain.PetType, error) {
	pt, ok := p.t.s.petTypes[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &pt, nil
}

func (p petTypesStore) GetByName(_ context.Context, name string) (*catalogdomain.PetType, error) {
	for _, id := range sortedKeys(p.t.s.petTypes) {
		if pt := p.t.s.petTypes[id]; pt.Name == name {
			return &pt, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (p petTypesStore) List(_ context.Context) ([]*catalogdomain.PetType, error) {
	list := make([]*catalogdomain.PetType, 0, len(p.t.s.petTypes))
	for _, id := range sortedKeys(p.t.s.petTypes) {
		pt := p.t.s.petTypes[id]
		list = append(list, &pt)
	}
	return list, nil
}

func (p petTypesStore) Delete(_ context.Context, id int64) error {
	s := p.t.s
	if _, ok := s.petTypes[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(s.petTypes, id)
	for pid, pet := range s.pets {
		if pet.PetTypeID != nil && *pet.PetTypeID == id {
			pet.PetTypeID = nil
			s.pets[pid] = pet
		}
	}
	return nil
}

type petsStore struct{ t *txScope }

func (p petsStore) Create(_ context.Context, pet *catalogdomain.Pet) (*catalogdomain.Pet, error) {
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	s := p.t.s
	if pet.PetTypeID != nil {
		if _, ok := s.petTypes[*pet.PetTypeID]; !ok {
			return nil, gateway.ErrReference
		}
	}
	if pet.CreatedBy != nil {
		if _, ok := s.users[*pet.CreatedBy]; !ok {
			return nil, gateway.ErrReference
		}
	}
	clone := clonePet(*pet)
	s.seq.pets++
	clone.ID = s.seq.pets
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = p.t.now()
	}
	s.pets[clone.ID] = clone
	out := clonePet(clone)
	return &out, nil
}

func (p petsStore) GetByID(_ context.Context, id int64) (*catalogdomain.Pet, error) {
	pet, ok := p.t.s.pets[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	out := clonePet(pet)
	return &out, nil
}

// GetForUpdate needs no extra locking: the transaction already holds the
// gateway mutex.
func (p petsStore) GetForUpdate(ctx context.Context, id int64) (*catalogdomain.Pet, error) {
	return p.GetByID(ctx, id)
}

func (p petsStore) SetAvailable(_ context.Context, id int64, available bool) error {
	pet, ok := p.t.s.pets[id]
	if !ok {
		return gateway.ErrNotFound
	}
	pet.Available = available
	p.t.s.pets[id] = pet
	return nil
}

func (p petsStore) List(_ context.Context, filter catalogdomain.PetFilter) ([]*catalogdomain.Pet, error) {
	list := make([]*catalogdomain.Pet, 0, len(p.t.s.pets))
	for _, id := range sortedKeys(p.t.s.pets) {
		pet := clonePet(p.t.s.pets[id])
		if filter.Matches(&pet) {
			list = append(list, &pet)
		}
	}
	return list, nil
}

func (p petsStore) Delete(_ context.Context, id int64) error {
	s := p.t.s
	if _, ok := s.pets[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(s.pets, id)
	for aid, a := range s.adoptions {
		if a.PetID == id {
			delete(s.adoptions, aid)
		}
	}
	for rid, r := range s.reviews {
		if r.PetID == id {
			delete(s.reviews, rid)
		}
	}
	return nil
}

func clonePet(p catalogdomain.Pet) catalogdomain.Pet {
	p.Age = copyInt(p.Age)
	p.PetTypeID = copyInt64(p.PetTypeID)
	p.CreatedBy = copyInt64(p.CreatedBy)
	return p
}

type adoptionsStore struct{ t *txScope }

func (a adoptionsStore) Create(_ context.Context, adoption *adoptionsdomain.Adoption) (*adoptionsdomain.Adoption, error) {
	if adoption == nil {
		return nil, errors.New("adoption is nil")
	}
	s := a.t.s
	if _, ok := s.users[adoption.UserID]; !ok {
		return nil, gateway.ErrReference
	}
	if _, ok := s.pets[adoption.PetID]; !ok {
		return nil, gateway.ErrReference
	}
	clone := *adoption
	s.seq.adoptions++
	clone.ID = s.seq.adoptions
	if clone.AdoptionDate.IsZero() {
		clone.AdoptionDate = a.t.now()
	}
	s.adoptions[clone.ID] = clone
	return &clone, nil
}

func (a adoptionsStore) GetByID(_ context.Context, id int64) (*adoptionsdomain.Adoption, error) {
	adoption, ok := a.t.s.adoptions[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &adoption, nil
}

func (a adoptionsStore) GetForUpdate(ctx context.Context, id int64) (*adoptionsdomain.Adoption, error) {
	return a.GetByID(ctx, id)
}

func (a adoptionsStore) FindByUserAndPet(_ context.Context, userID, petID int64) (*adoptionsdomain.Adoption, error) {
	for _, id := range sortedKeys(a.t.s.adoptions) {
		if adoption := a.t.s.adoptions[id]; adoption.UserID == userID && adoption.PetID == petID {
			return &adoption, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (a adoptionsStore) FindWithStatusForUpdate(_ context.Context, userID, petID int64, status adoptionsdomain.Status) (*adoptionsdomain.Adoption, error) {
	for _, id := range sortedKeys(a.t.s.adoptions) {
		if adoption := a.t.s.adoptions[id]; adoption.UserID == userID && adoption.PetID == petID && adoption.Status.Is(status) {
			return &adoption, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (a adoptionsStore) UpdateStatus(_ context.Context, id int64, status adoptionsdomain.Status) error {
	adoption, ok := a.t.s.adoptions[id]
	if !ok {
		return gateway.ErrNotFound
	}
	adoption.Status = status
	a.t.s.adoptions[id] = adoption
	return nil
}

func (a adoptionsStore) List(_ context.Context, filter adoptionsdomain.Filter) ([]*adoptionsdomain.Adoption, error) {
	list := make([]*adoptionsdomain.Adoption, 0, len(a.t.s.adoptions))
	for _, id := range sortedKeys(a.t.s.adoptions) {
		adoption := a.t.s.adoptions[id]
		if filter.Matches(&adoption) {
			list = append(list, &adoption)
		}
	}
	return list, nil
}

type reviewsStore struct{ t *txScope }

func (r reviewsStore) Create(_ context.Context, review *reviewsdomain.Review) (*reviewsdomain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	s := r.t.s
	if _, ok := s.users[review.UserID]; !ok {
		return nil, gateway.ErrReference
	}
	if _, ok := s.pets[review.PetID]; !ok {
		return nil, gateway.ErrReference
	}
	clone := *review
	s.seq.reviews++
	clone.ID = s.seq.reviews
	if clone.ReviewDate.IsZero() {
		clone.ReviewDate = r.t.now()
	}
	s.reviews[clone.ID] = clone
	return &clone, nil
}

func (r reviewsStore) List(_ context.Context, filter reviewsdomain.Filter) ([]*reviewsdomain.Review, error) {
	list := make([]*reviewsdomain.Review, 0, len(r.t.s.reviews))
	for _, id := range sortedKeys(r.t.s.reviews) {
		review := r.t.s.reviews[id]
		if filter.Matches(&review) {
			list = append(list, &review)
		}
	}
	return list, nil
}
