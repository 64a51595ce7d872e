// Package seed loads demo users into a repository. Fixtures bypass the
// request validation rules; only the email unique constraint applies.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/WiMProject/backend-test/internal/user"
)

//go:embed users.yaml
var defaultFixtures []byte

type Fixture struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	IsActive   bool   `yaml:"is_active"`
	Department string `yaml:"department"`
	Password   string `yaml:"password"`
}

type fixtureFile struct {
	Users []Fixture `yaml:"users"`
}

// DefaultFixtures returns the built-in demo users.
func DefaultFixtures() ([]Fixture, error) {
	return LoadFixtures(bytes.NewReader(defaultFixtures))
}

func LoadFixtures(r io.Reader) ([]Fixture, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file fixtureFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid fixture file: %w", err)
	}

	return file.Users, nil
}

// FakeFixtures generates n random users that satisfy the create rules.
func FakeFixtures(faker *gofakeit.Faker, n int) []Fixture {
	fixtures := make([]Fixture, 0, n)
	for i := 0; i < n; i++ {
		fixtures = append(fixtures, Fixture{
			Name:       faker.Name(),
			Email:      faker.Email(),
			Phone:      faker.Numerify("08##########"),
			IsActive:   faker.Bool(),
			Department: faker.JobTitle(),
			Password:   faker.Password(true, true, true, false, false, 12),
		})
	}

	return fixtures
}

type Result struct {
	Created int
	Skipped int
}

type Seeder struct {
	repo     user.Repository
	hashCost int
}

func NewSeeder(repo user.Repository, hashCost int) *Seeder {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Seeder{repo: repo, hashCost: hashCost}
}

// Seed inserts every fixture. Fixtures whose email already exists are skipped.
func (s *Seeder) Seed(ctx context.Context, fixtures []Fixture) (Result, error) {
	var res Result

	for _, f := range fixtures {
		hash, err := user.HashPassword(f.Password, s.hashCost)
		if err != nil {
			return res, fmt.Errorf("seed: %s: %w", f.Email, err)
		}

		_, err = s.repo.Create(ctx, &user.User{
			Name:         f.Name,
			Email:        user.NormalizeEmail(f.Email),
			Phone:        f.Phone,
			IsActive:     f.IsActive,
			Department:   f.Department,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, user.ErrEmailExists) {
				log.Debug().Str("email", f.Email).Msg("seed: user already exists, skipping")
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("seed: failed to create %s: %w", f.Email, err)
		}
		res.Created++
	}

	return res, nil
}
