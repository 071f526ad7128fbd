package store

import (
	"context"
	"fmt"
	"time"

	"aquiestoy/internal/cases"
	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	casoTableName          = "aquiestoy.casos"
	casoCategoriaTableName = "aquiestoy.caso_categorias"
	categoriaTableName     = "aquiestoy.categorias"
	usuarioTableName       = "aquiestoy.usuarios"
)

var casoColumns = utils.StructTagValues(types.Caso{})

// CaseRepository owns all writes to casos and caso_categorias.
type CaseRepository struct {
	pool *pgxpool.Pool
}

func NewCaseRepository(pool *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{pool: pool}
}

// InTx runs fn inside one transaction. The rollback in the deferred func is a
// no-op once Commit has succeeded.
func (r *CaseRepository) InTx(ctx context.Context, fn func(cases.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin caso transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&caseTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit caso transaction: %w", err)
	}

	return nil
}

func (r *CaseRepository) CaseByID(ctx context.Context, casoID int64) (*types.CasoRow, error) {
	query, args, err := joinedCaseQuery().
		Where(sq.Eq{"c.id": casoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate caso query: %w", err)
	}

	var row types.CasoRow
	err = pgxscan.Get(ctx, r.pool, &row, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCasoNotFound
		}
		return nil, fmt.Errorf("failed to fetch caso: %w", err)
	}

	return &row, nil
}

func (r *CaseRepository) AllCases(ctx context.Context) ([]*types.CasoRow, error) {
	query, args, err := allCasesQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate casos query: %w", err)
	}

	rows := make([]*types.CasoRow, 0)
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch casos: %w", err)
	}

	return rows, nil
}

// CategoryLinkExists reports whether a caso still has a category link row.
func (r *CaseRepository) CategoryLinkExists(ctx context.Context, casoID int64) (bool, error) {
	query, args, err := psql().
		Select("id_categoria").
		From(casoCategoriaTableName).
		Where(sq.Eq{"id_caso": casoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate category link query: %w", err)
	}

	var idCategoria int64
	err = r.pool.QueryRow(ctx, query, args...).Scan(&idCategoria)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch category link: %w", err)
	}

	return true, nil
}

// caseTx implements cases.Tx over a single pgx transaction.
type caseTx struct {
	tx pgx.Tx
}

func (t *caseTx) InsertCaseShell(ctx context.Context, caso *types.Caso) (int64, error) {
	caso.FechaCreacion = time.Now()

	// monto_recaudado and esta_abierto fall back to their column defaults.
	query, args, err := psql().
		Insert(casoTableName).
		Columns(
			"id_beneficiario",
			"id_estado",
			"titulo",
			"descripcion",
			"monto_objetivo",
			"entidad",
			"direccion",
			"fecha_limite",
			"fecha_creacion",
		).
		Values(
			caso.IDBeneficiario,
			caso.IDEstado,
			caso.Titulo,
			caso.Descripcion,
			caso.MontoObjetivo,
			caso.Entidad,
			caso.Direccion,
			caso.FechaLimite,
			caso.FechaCreacion,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate insert caso query: %w", err)
	}

	var id int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert caso: %w", err)
	}

	caso.ID = id
	return id, nil
}

// PatchImageURLs sets only the supplied image slots. Column names come from
// the fixed 1..4 loop, never from caller input.
func (t *caseTx) PatchImageURLs(ctx context.Context, casoID int64, urls map[int]string) error {
	if len(urls) == 0 {
		return nil
	}

	update := psql().Update(casoTableName)
	for slot := 1; slot <= 4; slot++ {
		url, ok := urls[slot]
		if !ok {
			continue
		}
		update = update.Set(fmt.Sprintf("imagen%d", slot), url)
	}

	query, args, err := update.Where(sq.Eq{"id": casoID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate patch imagenes query for caso %d: %w", casoID, err)
	}

	_, err = t.tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to patch caso imagenes")
}

func (t *caseTx) UpsertCategoryLink(ctx context.Context, casoID, categoriaID int64) error {
	query, args, err := psql().
		Insert(casoCategoriaTableName).
		Columns("id_caso", "id_categoria").
		Values(casoID, categoriaID).
		Suffix("ON CONFLICT (id_caso) DO UPDATE SET id_categoria = EXCLUDED.id_categoria").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert category link query: %w", err)
	}

	_, err = t.tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert category link")
}

func (t *caseTx) UpdateCaseFields(ctx context.Context, casoID int64, upd *types.CasoUpdate) error {
	set := casoUpdateColumns(upd)
	if len(set) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(casoTableName).
		SetMap(set).
		Where(sq.Eq{"id": casoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update caso query for caso %d: %w", casoID, err)
	}

	_, err = t.tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update caso")
}

func (t *caseTx) DeleteCategoryLink(ctx context.Context, casoID int64) error {
	query, args, err := psql().
		Delete(casoCategoriaTableName).
		Where(sq.Eq{"id_caso": casoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete category link query: %w", err)
	}

	_, err = t.tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete category link")
}

func (t *caseTx) DeleteCase(ctx context.Context, casoID int64) error {
	query, args, err := psql().
		Delete(casoTableName).
		Where(sq.Eq{"id": casoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete caso query: %w", err)
	}

	_, err = t.tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete caso")
}

// casoUpdateColumns translates the optional-field update struct into SQL
// columns through a fixed allow-list. The category link is handled
// separately; it is not a casos column.
func casoUpdateColumns(upd *types.CasoUpdate) map[string]any {
	set := make(map[string]any)

	if upd.Titulo != nil {
		set["titulo"] = *upd.Titulo
	}
	if upd.Descripcion != nil {
		set["descripcion"] = *upd.Descripcion
	}
	if upd.MontoObjetivo != nil {
		set["monto_objetivo"] = *upd.MontoObjetivo
	}
	if upd.Entidad != nil {
		set["entidad"] = *upd.Entidad
	}
	if upd.Direccion != nil {
		set["direccion"] = *upd.Direccion
	}
	if upd.FechaLimite != nil {
		set["fecha_limite"] = *upd.FechaLimite
	}
	if upd.IDEstado != nil {
		set["id_estado"] = *upd.IDEstado
	}
	if upd.EstaAbierto != nil {
		set["esta_abierto"] = *upd.EstaAbierto
	}

	return set
}

func joinedCaseQuery() sq.SelectBuilder {
	cols := make([]string, 0, len(casoColumns)+7)
	for _, col := range casoColumns {
		cols = append(cols, "c."+col)
	}
	cols = append(cols,
		"cc.id_categoria",
		"cat.nombre AS nombre_categoria",
		"u.nombres AS nombres_beneficiario",
		"u.apellido_paterno AS apellido_paterno_beneficiario",
		"u.apellido_materno AS apellido_materno_beneficiario",
		"u.correo AS correo_beneficiario",
		"u.telefono AS telefono_beneficiario",
	)

	return psql().
		Select(cols...).
		From(casoTableName + " c").
		LeftJoin(casoCategoriaTableName + " cc ON cc.id_caso = c.id").
		LeftJoin(categoriaTableName + " cat ON cat.id = cc.id_categoria").
		LeftJoin(usuarioTableName + " u ON u.id = c.id_beneficiario")
}

func allCasesQuery() sq.SelectBuilder {
	// Newest first; creation timestamps can coincide, so the id keeps the
	// ordering stable.
	return joinedCaseQuery().OrderBy("c.fecha_creacion DESC", "c.id ASC")
}
