// Package seed loads a YAML catalog of pet types and pets into the platform.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/shared/failure"
)

// Catalog is the document layout of a seed file.
type Catalog struct {
	Admin    *Admin    `yaml:"admin"`
	PetTypes []PetType `yaml:"pet_types"`
	Pets     []Pet     `yaml:"pets"`
}

type Admin struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type PetType struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Pet struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Breed       string `yaml:"breed"`
	Age         *int   `yaml:"age"`
	Gender      string `yaml:"gender"`
	Description string `yaml:"description"`
}

// Result counts what a Load call created.
type Result struct {
	AdminCreated bool
	PetTypes     int
	Pets         int
}

// Decode parses a seed document and checks pet type references.
func Decode(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	known := make(map[string]struct{}, len(catalog.PetTypes))
	for _, t := range catalog.PetTypes {
		known[strings.ToLower(strings.TrimSpace(t.Name))] = struct{}{}
	}
	var errs []error
	for i, pet := range catalog.Pets {
		if pet.Type == "" {
			continue
		}
		if _, ok := known[strings.ToLower(strings.TrimSpace(pet.Type))]; !ok {
			errs = append(errs, fmt.Errorf("pets[%d] %q: unknown pet type %q", i, pet.Name, pet.Type))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Loader writes a catalog through the application services.
type Loader struct {
	accounts accountsports.Service
	catalog  catalogports.Service
	logger   *slog.Logger
}

func NewLoader(accounts accountsports.Service, catalog catalogports.Service, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{accounts: accounts, catalog: catalog, logger: logger}
}

// Load is safe to repeat: pet types, pets and the admin account that already
// exist (matched by name or email) are left untouched.
func (l *Loader) Load(ctx context.Context, catalog *Catalog) (Result, error) {
	var result Result
	if catalog.Admin != nil {
		created, err := l.ensureAdmin(ctx, *catalog.Admin)
		if err != nil {
			return result, err
		}
		result.AdminCreated = created
	}

	existing, err := l.catalog.ListPetTypes(ctx)
	if err != nil {
		return result, fmt.Errorf("list pet types: %w", err)
	}
	typeIDs := make(map[string]int64, len(existing))
	for _, t := range existing {
		typeIDs[strings.ToLower(t.Name)] = t.ID
	}
	for _, t := range catalog.PetTypes {
		key := strings.ToLower(strings.TrimSpace(t.Name))
		if _, ok := typeIDs[key]; ok {
			l.logger.Info("pet type already present", slog.String("name", t.Name))
			continue
		}
		created, err := l.catalog.AddPetType(ctx, t.Name, t.Description)
		if err != nil {
			return result, fmt.Errorf("add pet type %q: %w", t.Name, err)
		}
		typeIDs[key] = created.ID
		result.PetTypes++
	}

	pets, err := l.catalog.ListPets(ctx, catalogdomain.PetFilter{})
	if err != nil {
		return result, fmt.Errorf("list pets: %w", err)
	}
	present := make(map[string]struct{}, len(pets))
	for _, p := range pets {
		present[strings.ToLower(p.Name)] = struct{}{}
	}
	for _, pet := range catalog.Pets {
		if _, ok := present[strings.ToLower(strings.TrimSpace(pet.Name))]; ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(pet.Type))
		input := catalogports.AddPetInput{
			Name:        pet.Name,
			Breed:       pet.Breed,
			Age:         pet.Age,
			Gender:      pet.Gender,
			Description: pet.Description,
		}
		if id, ok := typeIDs[key]; ok {
			input.PetTypeID = &id
		}
		if _, err := l.catalog.AddPet(ctx, input); err != nil {
			return result, fmt.Errorf("add pet %q: %w", pet.Name, err)
		}
		present[strings.ToLower(strings.TrimSpace(pet.Name))] = struct{}{}
		result.Pets++
	}
	return result, nil
}

func (l *Loader) ensureAdmin(ctx context.Context, admin Admin) (bool, error) {
	_, err := l.accounts.Register(ctx, accountsports.RegisterInput{
		Username: admin.Username,
		Email:    admin.Email,
		Password: admin.Password,
		Role:     string(accountsdomain.RoleAdmin),
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, failure.ErrConflict):
		l.logger.Info("admin account already present", slog.String("email", admin.Email))
		return false, nil
	default:
		return false, fmt.Errorf("register admin: %w", err)
	}
}
