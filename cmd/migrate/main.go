package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/wanderlust/internal/infrastructure/observability"
	"github.com/zatekoja/wanderlust/pkg/config"
)

func main() {
	var steps int
	flag.IntVar(&steps, "steps", 1, "Number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("wanderlust-migrate", cfg.Environment)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgClient.Close()

	migrator, err := postgres.NewMigrator(pgClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare migrations")
	}

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down(steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrator.Version()
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("Migration failed")
	}
}
