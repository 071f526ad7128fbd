package main

import (
	"context"
	"fmt"

	"aquiestoy/internal/db"
	"aquiestoy/internal/seed"
	"aquiestoy/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		categoriesRepo := store.NewCategoryRepository(pool)

		logrus.Info("Seeding categorias...")
		if err := seed.SeedCategorias(ctx, categoriesRepo); err != nil {
			return fmt.Errorf("failed to seed categorias: %w", err)
		}

		logrus.Info("Categorias seeded successfully")

		return nil
	},
}
