package main

import (
	"fmt"
	"os"

	"github.com/greyweave/charsheet/internal/clients/catalog"
	sheetorch "github.com/greyweave/charsheet/internal/orchestrators/sheet"
	"github.com/greyweave/charsheet/internal/pkg/clock"
	"github.com/greyweave/charsheet/internal/pkg/idgen"
	"github.com/greyweave/charsheet/internal/redis"
	sheetrepo "github.com/greyweave/charsheet/internal/repositories/sheet"
	sheetsvc "github.com/greyweave/charsheet/internal/services/sheet"
)

// newService wires the catalog client, repository and orchestrator. Flags
// win over environment variables.
func newService() (sheetsvc.Service, error) {
	baseURL := catalogBaseURL
	if baseURL == "" {
		baseURL = os.Getenv("DND5E_API_URL")
	}

	catalogClient, err := catalog.New(&catalog.Config{BaseURL: baseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	repo, err := newRepository()
	if err != nil {
		return nil, err
	}

	return sheetorch.New(&sheetorch.Config{
		Repository:    repo,
		CatalogClient: catalogClient,
		IDGenerator:   idgen.NewUUID("sheet"),
		Clock:         clock.New(),
	})
}

// newRepository keeps sheets in memory unless a Redis address is given.
func newRepository() (sheetrepo.Repository, error) {
	addr := redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		return sheetrepo.NewInMemory(), nil
	}

	client, err := redis.NewClient(addr, &redis.Options{
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	return sheetrepo.NewRedisRepository(client), nil
}

// printWarnings surfaces degraded-data warnings without failing the command.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
}
