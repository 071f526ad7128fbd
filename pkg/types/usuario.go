package types

import "time"

type Usuario struct {
	ID            int64     `db:"id" json:"id"`
	IDTipoUsuario int       `db:"id_tipo_usuario" json:"idTipoUsuario"`
	Nombres       string    `db:"nombres" json:"nombres"`
	ApellidoP     string    `db:"apellido_paterno" json:"apellidoPaterno"`
	ApellidoM     string    `db:"apellido_materno" json:"apellidoMaterno"`
	Correo        string    `db:"correo" json:"correo"`
	Contrasena    string    `db:"contrasena" json:"-"`
	Telefono      string    `db:"telefono" json:"telefono"`
	Direccion     string    `db:"direccion" json:"direccion"`
	Colonia       string    `db:"colonia" json:"colonia"`
	CodigoPostal  string    `db:"codigo_postal" json:"codigoPostal"`
	Ciudad        string    `db:"ciudad" json:"ciudad"`
	Estado        string    `db:"estado" json:"estado"`
	EstaActivo    int       `db:"esta_activo" json:"estaActivo"`
	Verificado    int       `db:"verificado" json:"verificado"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fechaCreacion"`
}

// UsuarioUpdate is the partial field set accepted by the usuario update
// endpoint. The repository maps set fields through a fixed column allow-list;
// arbitrary keys never reach the SQL builder.
type UsuarioUpdate struct {
	IDTipoUsuario *int    `json:"idTipoUsuario"`
	Nombres       *string `json:"nombres"`
	ApellidoP     *string `json:"apellidoPaterno"`
	ApellidoM     *string `json:"apellidoMaterno"`
	Correo        *string `json:"correo"`
	Contrasena    *string `json:"contrasena"`
	Telefono      *string `json:"telefono"`
	Direccion     *string `json:"direccion"`
	Colonia       *string `json:"colonia"`
	CodigoPostal  *string `json:"codigoPostal"`
	Ciudad        *string `json:"ciudad"`
	Estado        *string `json:"estado"`
	EstaActivo    *int    `json:"estaActivo"`
	Verificado    *int    `json:"verificado"`
}

func (u *UsuarioUpdate) Empty() bool {
	return u.IDTipoUsuario == nil &&
		u.Nombres == nil &&
		u.ApellidoP == nil &&
		u.ApellidoM == nil &&
		u.Correo == nil &&
		u.Contrasena == nil &&
		u.Telefono == nil &&
		u.Direccion == nil &&
		u.Colonia == nil &&
		u.CodigoPostal == nil &&
		u.Ciudad == nil &&
		u.Estado == nil &&
		u.EstaActivo == nil &&
		u.Verificado == nil
}
