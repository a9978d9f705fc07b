// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chamber/internal/authn"
	"github.com/MKhiriev/go-chamber/internal/config"
	handlerhttp "github.com/MKhiriev/go-chamber/internal/handler/http"
	"github.com/MKhiriev/go-chamber/internal/logger"
	"github.com/MKhiriev/go-chamber/internal/metrics"
	"github.com/MKhiriev/go-chamber/internal/server"
	"github.com/MKhiriev/go-chamber/internal/service"
	"github.com/MKhiriev/go-chamber/internal/store"
	"github.com/MKhiriev/go-chamber/internal/vault"
	"github.com/MKhiriev/go-chamber/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-chamber-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().Msg("starting a server")
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.DB.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to postgres")
	}

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	keyring, generatedKey, err := vault.Bootstrap(vault.NewFileKeyFileStore(cfg.KeyFile.Path))
	if err != nil {
		log.Fatal().Err(err).Msg("error bootstrapping vault keyring")
	}
	if generatedKey != "" {
		// Printed once, to operator-controlled stdout, never logged again
		// and never persisted anywhere but the key-file itself (spec.md
		// §4.1, P5).
		fmt.Printf("generated root unseal key (store this securely, it will not be shown again): %s\n", generatedKey)
	}

	authenticator, err := authn.NewAuthenticator(cfg.App.TokenIssuer, cfg.App.TokenDuration)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating authenticator")
	}

	secretStore := store.NewPostgresSecretStore(db)
	userStore := store.NewPostgresUserStore(db)

	services := service.NewServices(secretStore, userStore, keyring, authenticator)

	m := metrics.New()

	handler := handlerhttp.NewHandler(services, log, m)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
