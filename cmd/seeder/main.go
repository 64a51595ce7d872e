package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/app"
	"github.com/WiMProject/backend-test/internal/config"
	"github.com/WiMProject/backend-test/internal/seed"
)

func main() {
	var fixturePath string
	var fakeCount int
	var fakeSeed int64
	flag.StringVar(&fixturePath, "file", "", "YAML fixture file (defaults to the built-in demo users)")
	flag.IntVar(&fakeCount, "fake", 0, "number of additional generated users")
	flag.Int64Var(&fakeSeed, "fake-seed", 0, "random seed for generated users (0 picks one)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	app.SetupLogger(cfg.App, cfg.Log)

	var fixtures []seed.Fixture
	if fixturePath == "" {
		fixtures, err = seed.DefaultFixtures()
	} else {
		var file *os.File
		file, err = os.Open(fixturePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", fixturePath).Msg("Failed to open fixture file")
		}
		fixtures, err = seed.LoadFixtures(file)
		file.Close()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load fixtures")
	}

	if fakeCount > 0 {
		fixtures = append(fixtures, seed.FakeFixtures(gofakeit.New(fakeSeed), fakeCount)...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, closeStore, err := app.OpenRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open user storage")
	}
	defer closeStore()

	res, err := seed.NewSeeder(repo, 0).Seed(ctx, fixtures)
	if err != nil {
		closeStore()
		log.Fatal().Err(err).Int("created", res.Created).Msg("Seeding failed")
	}

	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("Seeding finished")
}
