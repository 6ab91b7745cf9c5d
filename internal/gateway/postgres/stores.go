package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

type usersStore struct{ db *gorm.DB }

func (s usersStore) Create(ctx context.Context, user *accountsdomain.User) (*accountsdomain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toUserRecord(user)
	record.ID = 0
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s usersStore) GetByID(ctx context.Context, id int64) (*accountsdomain.User, error) {
	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s usersStore) GetByEmail(ctx context.Context, email string) (*accountsdomain.User, error) {
	var record userRecord
	if err := s.db.WithContext(ctx).First(&record, "email = ?", accountsdomain.NormalizeEmail(email)).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s usersStore) List(ctx context.Context) ([]*accountsdomain.User, error) {
	var records []userRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	users := make([]*accountsdomain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

// Delete relies on the ON DELETE rules of pets, adoptions and reviews.
func (s usersStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&userRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

type petTypesStore struct{ db *gorm.DB }

func (s petTypesStore) Create(ctx context.Context, petType *catalogdomain.PetType) (*catalogdomain.PetType, error) {
	if petType == nil {
		return nil, errors.New("pet type is nil")
	}
	record := toPetTypeRecord(petType)
	record.ID = 0
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s petTypesStore) GetByID(ctx context.Context, id int64) (*catalogdomain.PetType, error) {
	var record petTypeRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s petTypesStore) GetByName(ctx context.Context, name string) (*catalogdomain.PetType, error) {
	var record petTypeRecord
	if err := s.db.WithContext(ctx).First(&record, "type_name = ?", name).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s petTypesStore) List(ctx context.Context) ([]*catalogdomain.PetType, error) {
	var records []petTypeRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	types := make([]*catalogdomain.PetType, 0, len(records))
	for i := range records {
		types = append(types, records[i].toDomain())
	}
	return types, nil
}

func (s petTypesStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&petTypeRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

type petsStore struct{ db *gorm.DB }

func (s petsStore) Create(ctx context.Context, pet *catalogdomain.Pet) (*catalogdomain.Pet, error) {
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	record := toPetRecord(pet)
	record.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s petsStore) GetByID(ctx context.Context, id int64) (*catalogdomain.Pet, error) {
	var record petRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s petsStore) GetForUpdate(ctx context.Context, id int64) (*catalogdomain.Pet, error) {
	var record petRecord
	if err := forUpdate(s.db.WithContext(ctx)).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s petsStore) SetAvailable(ctx context.Context, id int64, available bool) error {
	result := s.db.WithContext(ctx).Model(&petRecord{}).Where("id = ?", id).Update("available", available)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

func (s petsStore) List(ctx context.Context, filter catalogdomain.PetFilter) ([]*catalogdomain.Pet, error) {
	query := s.db.WithContext(ctx).Order("id")
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if filter.PetTypeID != nil {
		query = query.Where("pet_type_id = ?", *filter.PetTypeID)
	}
	var records []petRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	pets := make([]*catalogdomain.Pet, 0, len(records))
	for i := range records {
		pets = append(pets, records[i].toDomain())
	}
	return pets, nil
}

func (s petsStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

type adoptionsStore struct{ db *gorm.DB }

func (s adoptionsStore) Create(ctx context.Context, adoption *adoptionsdomain.Adoption) (*adoptionsdomain.Adoption, error) {
	if adoption == nil {
		return nil, errors.New("adoption is nil")
	}
	record := toAdoptionRecord(adoption)
	record.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s adoptionsStore) GetByID(ctx context.Context, id int64) (*adoptionsdomain.Adoption, error) {
	var record adoptionRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s adoptionsStore) GetForUpdate(ctx context.Context, id int64) (*adoptionsdomain.Adoption, error) {
	var record adoptionRecord
	if err := forUpdate(s.db.WithContext(ctx)).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s adoptionsStore) FindByUserAndPet(ctx context.Context, userID, petID int64) (*adoptionsdomain.Adoption, error) {
	var record adoptionRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Order("id").
		First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s adoptionsStore) FindWithStatusForUpdate(ctx context.Context, userID, petID int64, status adoptionsdomain.Status) (*adoptionsdomain.Adoption, error) {
	var record adoptionRecord
	if err := forUpdate(s.db.WithContext(ctx)).
		Where("user_id = ? AND pet_id = ? AND LOWER(status) = ?", userID, petID, strings.ToLower(string(status))).
		First(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s adoptionsStore) UpdateStatus(ctx context.Context, id int64, status adoptionsdomain.Status) error {
	result := s.db.WithContext(ctx).Model(&adoptionRecord{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

func (s adoptionsStore) List(ctx context.Context, filter adoptionsdomain.Filter) ([]*adoptionsdomain.Adoption, error) {
	query := s.db.WithContext(ctx).Order("id")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.PetID != nil {
		query = query.Where("pet_id = ?", *filter.PetID)
	}
	if filter.Status != nil {
		query = query.Where("LOWER(status) = ?", strings.ToLower(string(*filter.Status)))
	}
	var records []adoptionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	adoptions := make([]*adoptionsdomain.Adoption, 0, len(records))
	for i := range records {
		adoptions = append(adoptions, records[i].toDomain())
	}
	return adoptions, nil
}

type reviewsStore struct{ db *gorm.DB }

func (s reviewsStore) Create(ctx context.Context, review *reviewsdomain.Review) (*reviewsdomain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	record := toReviewRecord(review)
	record.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (s reviewsStore) List(ctx context.Context, filter reviewsdomain.Filter) ([]*reviewsdomain.Review, error) {
	query := s.db.WithContext(ctx).Order("id")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.PetID != nil {
		query = query.Where("pet_id = ?", *filter.PetID)
	}
	var records []reviewRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	reviews := make([]*reviewsdomain.Review, 0, len(records))
	for i := range records {
		reviews = append(reviews, records[i].toDomain())
	}
	return reviews, nil
}
