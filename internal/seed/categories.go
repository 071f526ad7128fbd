package seed

import (
	"context"
	"fmt"

	"aquiestoy/internal/store"
	"aquiestoy/pkg/types"
)

// SeedCategorias syncs the database with the categoria definitions below.
// This file is the source of truth for categorias:
// - Inserts new categorias that don't exist
// - Updates existing categorias whose name changed
// - Deletes categorias from the DB that aren't in this list
//
// Caso category links reference these IDs, so never reuse a deleted ID.
func SeedCategorias(ctx context.Context, repo *store.CategoryRepository) error {
	categorias := []types.Categoria{
		{ID: 1, Nombre: "Salud"},
		{ID: 2, Nombre: "Educación"},
		{ID: 3, Nombre: "Vivienda"},
		{ID: 4, Nombre: "Alimentación"},
		{ID: 5, Nombre: "Emergencias"},
		{ID: 6, Nombre: "Adultos Mayores"},
		{ID: 7, Nombre: "Niñez"},
		{ID: 8, Nombre: "Discapacidad"},
	}

	fmt.Println("Starting categoria sync...")
	fmt.Printf("  Seed file contains %d categorias\n", len(categorias))

	seedIDs := make(map[int64]bool)
	for _, cat := range categorias {
		seedIDs[cat.ID] = true
	}

	existing, err := repo.AllCategorias(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch existing categorias: %w", err)
	}
	fmt.Printf("  Database contains %d categorias\n", len(existing))

	deletedCount := 0
	for _, existingCat := range existing {
		if !seedIDs[existingCat.ID] {
			fmt.Printf("  Deleting categoria: %s (id: %d)\n", existingCat.Nombre, existingCat.ID)
			if err := repo.DeleteCategoria(ctx, existingCat.ID); err != nil {
				return fmt.Errorf("failed to delete categoria %d: %w", existingCat.ID, err)
			}
			deletedCount++
		}
	}

	upsertedCount := 0
	for _, cat := range categorias {
		fmt.Printf("  Upserting categoria: %s (id: %d)\n", cat.Nombre, cat.ID)
		if err := repo.UpsertCategoria(ctx, &cat); err != nil {
			return fmt.Errorf("failed to upsert categoria %d: %w", cat.ID, err)
		}
		upsertedCount++
	}

	fmt.Printf("\nSync complete: %d upserted, %d deleted\n", upsertedCount, deletedCount)
	return nil
}
