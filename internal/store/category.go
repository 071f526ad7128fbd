package store

import (
	"context"
	"fmt"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var categoriaColumns = utils.StructTagValues(types.Categoria{})

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) AllCategorias(ctx context.Context) ([]*types.Categoria, error) {
	query, args, err := psql().
		Select(categoriaColumns...).
		From(categoriaTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categorias query: %w", err)
	}

	categorias := make([]*types.Categoria, 0)
	err = pgxscan.Select(ctx, r.pool, &categorias, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categorias: %w", err)
	}

	return categorias, nil
}

func (r *CategoryRepository) CategoriaByID(ctx context.Context, id int64) (*types.Categoria, error) {
	query, args, err := psql().
		Select(categoriaColumns...).
		From(categoriaTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categoria query: %w", err)
	}

	var categoria types.Categoria
	err = pgxscan.Get(ctx, r.pool, &categoria, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categoria: %w", err)
	}

	return &categoria, nil
}

func (r *CategoryRepository) DeleteCategoria(ctx context.Context, id int64) error {
	query, args, err := psql().
		Delete(categoriaTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete categoria query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete categoria: %w", err)
	}

	return nil
}

// UpsertCategoria keeps the seed definitions authoritative: inserts a new
// categoria or refreshes the name of an existing one.
func (r *CategoryRepository) UpsertCategoria(ctx context.Context, categoria *types.Categoria) error {
	query, args, err := psql().
		Insert(categoriaTableName).
		SetMap(utils.StructToMap(categoria)).
		Suffix("ON CONFLICT (id) DO UPDATE SET nombre = EXCLUDED.nombre").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert categoria query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert categoria: %w", err)
	}

	return nil
}
