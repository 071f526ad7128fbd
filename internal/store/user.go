package store

import (
	"context"
	"fmt"
	"time"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var usuarioColumns = utils.StructTagValues(types.Usuario{})

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) UsuarioByID(ctx context.Context, usuarioID int64) (*types.Usuario, error) {
	query, args, err := psql().
		Select(usuarioColumns...).
		From(usuarioTableName).
		Where(sq.Eq{"id": usuarioID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate usuario query: %w", err)
	}

	var usuario types.Usuario
	err = pgxscan.Get(ctx, r.pool, &usuario, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("failed to fetch usuario: %w", err)
	}

	return &usuario, nil
}

func (r *UserRepository) UsuarioByCorreo(ctx context.Context, correo string) (*types.Usuario, error) {
	query, args, err := psql().
		Select(usuarioColumns...).
		From(usuarioTableName).
		Where(sq.Eq{"correo": correo}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate usuario-by-correo query: %w", err)
	}

	var usuario types.Usuario
	err = pgxscan.Get(ctx, r.pool, &usuario, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("failed to fetch usuario by correo: %w", err)
	}

	return &usuario, nil
}

func (r *UserRepository) AllUsuarios(ctx context.Context) ([]*types.Usuario, error) {
	query, args, err := psql().
		Select(usuarioColumns...).
		From(usuarioTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate usuarios query: %w", err)
	}

	usuarios := make([]*types.Usuario, 0)
	err = pgxscan.Select(ctx, r.pool, &usuarios, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usuarios: %w", err)
	}

	return usuarios, nil
}

func (r *UserRepository) CreateUsuario(ctx context.Context, usuario *types.Usuario) error {
	usuario.FechaCreacion = time.Now()

	query, args, err := psql().
		Insert(usuarioTableName).
		Columns(
			"id_tipo_usuario",
			"nombres",
			"apellido_paterno",
			"apellido_materno",
			"correo",
			"contrasena",
			"telefono",
			"direccion",
			"colonia",
			"codigo_postal",
			"ciudad",
			"estado",
			"esta_activo",
			"verificado",
			"fecha_creacion",
		).
		Values(
			usuario.IDTipoUsuario,
			usuario.Nombres,
			usuario.ApellidoP,
			usuario.ApellidoM,
			usuario.Correo,
			usuario.Contrasena,
			usuario.Telefono,
			usuario.Direccion,
			usuario.Colonia,
			usuario.CodigoPostal,
			usuario.Ciudad,
			usuario.Estado,
			usuario.EstaActivo,
			usuario.Verificado,
			usuario.FechaCreacion,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert usuario query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&usuario.ID); err != nil {
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateUsuario(ctx context.Context, usuarioID int64, upd *types.UsuarioUpdate) error {
	set := usuarioUpdateColumns(upd)
	if len(set) == 0 {
		return nil
	}

	query, args, err := psql().
		Update(usuarioTableName).
		SetMap(set).
		Where(sq.Eq{"id": usuarioID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update usuario query for usuario %d: %w", usuarioID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrUsuarioNotFound
	}

	return nil
}

func (r *UserRepository) DeleteUsuario(ctx context.Context, usuarioID int64) error {
	query, args, err := psql().
		Delete(usuarioTableName).
		Where(sq.Eq{"id": usuarioID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete usuario query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrUsuarioNotFound
	}

	return nil
}

// usuarioUpdateColumns maps the optional update fields onto columns through a
// fixed allow-list. Caller-supplied keys never become column names.
func usuarioUpdateColumns(upd *types.UsuarioUpdate) map[string]any {
	set := make(map[string]any)

	if upd.IDTipoUsuario != nil {
		set["id_tipo_usuario"] = *upd.IDTipoUsuario
	}
	if upd.Nombres != nil {
		set["nombres"] = *upd.Nombres
	}
	if upd.ApellidoP != nil {
		set["apellido_paterno"] = *upd.ApellidoP
	}
	if upd.ApellidoM != nil {
		set["apellido_materno"] = *upd.ApellidoM
	}
	if upd.Correo != nil {
		set["correo"] = *upd.Correo
	}
	if upd.Contrasena != nil {
		set["contrasena"] = *upd.Contrasena
	}
	if upd.Telefono != nil {
		set["telefono"] = *upd.Telefono
	}
	if upd.Direccion != nil {
		set["direccion"] = *upd.Direccion
	}
	if upd.Colonia != nil {
		set["colonia"] = *upd.Colonia
	}
	if upd.CodigoPostal != nil {
		set["codigo_postal"] = *upd.CodigoPostal
	}
	if upd.Ciudad != nil {
		set["ciudad"] = *upd.Ciudad
	}
	if upd.Estado != nil {
		set["estado"] = *upd.Estado
	}
	if upd.EstaActivo != nil {
		set["esta_activo"] = *upd.EstaActivo
	}
	if upd.Verificado != nil {
		set["verificado"] = *upd.Verificado
	}

	return set
}
