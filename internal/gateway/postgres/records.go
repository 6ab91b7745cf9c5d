package postgres

import (
	"time"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
)

// Models returns the records owned by the gateway in dependency order, for
// schema migration.
func Models() []any {
	return []any{
		&userRecord{},
		&petTypeRecord{},
		&petRecord{},
		&adoptionRecord{},
		&reviewRecord{},
	}
}

type userRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"column:username;size:100;not null"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Role         string    `gorm:"column:role;size:20;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

type petTypeRecord struct {
	ID          int64  `gorm:"primaryKey;column:id"`
	TypeName    string `gorm:"column:type_name;size:100;not null;uniqueIndex"`
	Description string `gorm:"column:description;type:text"`
}

func (petTypeRecord) TableName() string { return "pet_types" }

type petRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	Name        string         `gorm:"column:name;size:100;not null"`
	Breed       string         `gorm:"column:breed;size:100"`
	Age         *int           `gorm:"column:age"`
	Gender      string         `gorm:"column:gender;size:20"`
	PetTypeID   *int64         `gorm:"column:pet_type_id;index"`
	PetType     *petTypeRecord `gorm:"foreignKey:PetTypeID;constraint:OnDelete:SET NULL"`
	Description string         `gorm:"column:description;type:text"`
	ImageURL    string         `gorm:"column:image_url;size:255"`
	Available   bool           `gorm:"column:available;not null;index"`
	CreatedBy   *int64         `gorm:"column:created_by;index"`
	Creator     *userRecord    `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (petRecord) TableName() string { return "pets" }

type adoptionRecord struct {
	ID           int64       `gorm:"primaryKey;column:id"`
	UserID       int64       `gorm:"column:user_id;not null;index:idx_adoptions_user_pet"`
	User         *userRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PetID        int64       `gorm:"column:pet_id;not null;index:idx_adoptions_user_pet"`
	Pet          *petRecord  `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	Status       string      `gorm:"column:status;size:50;not null;index"`
	AdoptionDate time.Time   `gorm:"column:adoption_date"`
}

func (adoptionRecord) TableName() string { return "adoptions" }

type reviewRecord struct {
	ID         int64       `gorm:"primaryKey;column:id"`
	UserID     int64       `gorm:"column:user_id;not null;index"`
	User       *userRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PetID      int64       `gorm:"column:pet_id;not null;index"`
	Pet        *petRecord  `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	Rating     int         `gorm:"column:rating;not null"`
	Comment    string      `gorm:"column:comment;type:text"`
	ReviewDate time.Time   `gorm:"column:review_date"`
}

func (reviewRecord) TableName() string { return "reviews" }

func toUserRecord(u *accountsdomain.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        accountsdomain.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRecord) toDomain() *accountsdomain.User {
	return &accountsdomain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         accountsdomain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

func toPetTypeRecord(pt *catalogdomain.PetType) petTypeRecord {
	return petTypeRecord{ID: pt.ID, TypeName: pt.Name, Description: pt.Description}
}

func (r petTypeRecord) toDomain() *catalogdomain.PetType {
	return &catalogdomain.PetType{ID: r.ID, Name: r.TypeName, Description: r.Description}
}

func toPetRecord(p *catalogdomain.Pet) petRecord {
	return petRecord{
		ID:          p.ID,
		Name:        p.Name,
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      p.Gender,
		PetTypeID:   p.PetTypeID,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Available:   p.Available,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func (r petRecord) toDomain() *catalogdomain.Pet {
	return &catalogdomain.Pet{
		ID:          r.ID,
		Name:        r.Name,
		Breed:       r.Breed,
		Age:         r.Age,
		Gender:      r.Gender,
		PetTypeID:   r.PetTypeID,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}

func toAdoptionRecord(a *adoptionsdomain.Adoption) adoptionRecord {
	return adoptionRecord{
		ID:           a.ID,
		UserID:       a.UserID,
		PetID:        a.PetID,
		Status:       string(a.Status),
		AdoptionDate: a.AdoptionDate,
	}
}

// toDomain canonicalises the stored status when it is one of the known values.
func (r adoptionRecord) toDomain() *adoptionsdomain.Adoption {
	status := adoptionsdomain.Status(r.Status)
	if parsed, err := adoptionsdomain.ParseStatus(r.Status); err == nil {
		status = parsed
	}
	return &adoptionsdomain.Adoption{
		ID:           r.ID,
		UserID:       r.UserID,
		PetID:        r.PetID,
		Status:       status,
		AdoptionDate: r.AdoptionDate,
	}
}

func toReviewRecord(r *reviewsdomain.Review) reviewRecord {
	return reviewRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		PetID:      r.PetID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate,
	}
}

func (r reviewRecord) toDomain() *reviewsdomain.Review {
	return &reviewsdomain.Review{
		ID:         r.ID,
		UserID:     r.UserID,
		PetID:      r.PetID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewDate: r.ReviewDate,
	}
}
