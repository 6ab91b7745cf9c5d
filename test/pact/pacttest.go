//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "adoption-api"
	ConsumerName = "adoption-portal"

	StateCatalogBaseline = "catalog baseline"
	StatePetAvailable    = "pet with id 1 is available"
	StatePetMissing      = "no pet with id 404"
	StateAdopterSession  = "adopter pact-adopter is signed in and pet 1 is available"
)

const (
	AvailablePetID int64 = 1
	MissingPetID   int64 = 404

	AdopterUsername = "pact-adopter"
	AdopterEmail    = "pact.adopter@example.com"
	AdopterPassword = "pact-pass"
	AdopterToken    = "pact-session-token"
)

const (
	examplePetName  = "Rex"
	examplePetType  = "Dog"
	examplePetBreed = "German Shepherd"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePet describes the pet the provider seeds for available-pet states.
type ExamplePet struct {
	TypeName string
	Name     string
	Breed    string
	Age      int
	Gender   string
}

// ExamplePetFixture provides stable test data for pact interactions.
func ExamplePetFixture() ExamplePet {
	return ExamplePet{
		TypeName: examplePetType,
		Name:     examplePetName,
		Breed:    examplePetBreed,
		Age:      4,
		Gender:   "Male",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
