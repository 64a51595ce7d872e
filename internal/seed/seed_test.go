package seed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WiMProject/backend-test/internal/seed"
	"github.com/WiMProject/backend-test/internal/user"
)

func TestDefaultFixtures(t *testing.T) {
	fixtures, err := seed.DefaultFixtures()
	require.NoError(t, err)
	require.Len(t, fixtures, 8)

	assert.Equal(t, "wildan@example.com", fixtures[0].Email)

	seen := make(map[string]bool)
	for _, f := range fixtures {
		assert.False(t, seen[f.Email], "duplicate fixture email %s", f.Email)
		seen[f.Email] = true
		assert.NotEmpty(t, f.Password)
	}
}

func TestLoadFixtures(t *testing.T) {
	fixtures, err := seed.LoadFixtures(strings.NewReader(`
users:
  - name: Jane
    email: jane@example.com
    phone: "081234567890"
    is_active: false
    department: QA
    password: janepass
`))
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, seed.Fixture{
		Name:       "Jane",
		Email:      "jane@example.com",
		Phone:      "081234567890",
		IsActive:   false,
		Department: "QA",
		Password:   "janepass",
	}, fixtures[0])
}

func TestLoadFixtures_Empty(t *testing.T) {
	fixtures, err := seed.LoadFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestLoadFixtures_UnknownField(t *testing.T) {
	_, err := seed.LoadFixtures(strings.NewReader("users:\n  - name: Jane\n    role: admin\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fixture file")
}

func TestFakeFixtures_SatisfyCreateRules(t *testing.T) {
	fixtures := seed.FakeFixtures(gofakeit.New(42), 20)
	require.Len(t, fixtures, 20)

	validator := user.NewValidator(user.NewMemoryRepository())
	for _, f := range fixtures {
		in := user.Input{
			Name:       &f.Name,
			Email:      &f.Email,
			Phone:      &f.Phone,
			Department: &f.Department,
			Password:   &f.Password,
			IsActive:   &f.IsActive,
		}
		require.NoError(t, validator.ValidateCreate(context.Background(), in), "fixture %+v", f)
	}
}

func TestSeeder_SkipsExistingEmails(t *testing.T) {
	repo := user.NewMemoryRepository()
	seeder := seed.NewSeeder(repo, bcrypt.MinCost)

	fixtures, err := seed.DefaultFixtures()
	require.NoError(t, err)

	res, err := seeder.Seed(context.Background(), fixtures)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Created: len(fixtures)}, res)

	res, err = seeder.Seed(context.Background(), fixtures)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Skipped: len(fixtures)}, res)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, len(fixtures))

	first := users[0]
	assert.Equal(t, fixtures[0].Email, first.Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(first.PasswordHash), []byte(fixtures[0].Password)))
}
