package types

type Categoria struct {
	ID     int64  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

// CasoCategoria links a caso to its single active categoria.
type CasoCategoria struct {
	IDCaso      int64 `db:"id_caso" json:"idCaso"`
	IDCategoria int64 `db:"id_categoria" json:"idCategoria"`
}
