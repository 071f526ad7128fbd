package types

import "time"

type CasoEstado int

const (
	CasoEstadoActivo     CasoEstado = 1
	CasoEstadoEnRevision CasoEstado = 2
	CasoEstadoPausado    CasoEstado = 3
	CasoEstadoRechazado  CasoEstado = 4
	CasoEstadoConcluido  CasoEstado = 5
)

// Caso is a row of the casos table.
type Caso struct {
	ID             int64     `db:"id"`
	IDBeneficiario int64     `db:"id_beneficiario"`
	IDEstado       int       `db:"id_estado"`
	Titulo         string    `db:"titulo"`
	Descripcion    string    `db:"descripcion"`
	MontoObjetivo  float64   `db:"monto_objetivo"`
	MontoRecaudado float64   `db:"monto_recaudado"`
	Entidad        string    `db:"entidad"`
	Direccion      string    `db:"direccion"`
	FechaLimite    time.Time `db:"fecha_limite"`
	FechaCreacion  time.Time `db:"fecha_creacion"`
	Imagen1        *string   `db:"imagen1"`
	Imagen2        *string   `db:"imagen2"`
	Imagen3        *string   `db:"imagen3"`
	Imagen4        *string   `db:"imagen4"`
	EstaAbierto    *int      `db:"esta_abierto"`
}

// CasoRow is a caso left-joined to its category link and beneficiary.
// Category and beneficiary fields stay nil when the link or user is missing.
type CasoRow struct {
	Caso

	IDCategoria     *int64  `db:"id_categoria"`
	NombreCategoria *string `db:"nombre_categoria"`

	NombresBeneficiario         *string `db:"nombres_beneficiario"`
	ApellidoPaternoBeneficiario *string `db:"apellido_paterno_beneficiario"`
	ApellidoMaternoBeneficiario *string `db:"apellido_materno_beneficiario"`
	CorreoBeneficiario          *string `db:"correo_beneficiario"`
	TelefonoBeneficiario        *string `db:"telefono_beneficiario"`
}

// CasoUpdate carries the partial field set of an update request. Nil fields
// are left untouched; the repository translates set fields through a fixed
// column allow-list.
type CasoUpdate struct {
	IDCategoria   *int64     `json:"idCategoria"`
	Titulo        *string    `json:"titulo"`
	Descripcion   *string    `json:"descripcion"`
	MontoObjetivo *float64   `json:"montoObjetivo"`
	Entidad       *string    `json:"entidad"`
	Direccion     *string    `json:"direccion"`
	FechaLimite   *time.Time `json:"fechaLimite"`
	IDEstado      *int       `json:"idEstado"`
	EstaAbierto   *int       `json:"estaAbierto"`
}

func (u *CasoUpdate) Empty() bool {
	return u.IDCategoria == nil &&
		u.Titulo == nil &&
		u.Descripcion == nil &&
		u.MontoObjetivo == nil &&
		u.Entidad == nil &&
		u.Direccion == nil &&
		u.FechaLimite == nil &&
		u.IDEstado == nil &&
		u.EstaAbierto == nil
}

// CaseView is the structured projection returned to clients.
type CaseView struct {
	ID             int64            `json:"id"`
	Titulo         string           `json:"titulo"`
	Descripcion    string           `json:"descripcion"`
	MontoObjetivo  float64          `json:"montoObjetivo"`
	MontoRecaudado float64          `json:"montoRecaudado"`
	Entidad        string           `json:"entidad"`
	Direccion      string           `json:"direccion"`
	FechaLimite    time.Time        `json:"fechaLimite"`
	FechaCreacion  time.Time        `json:"fechaCreacion"`
	Imagenes       ImagenesView     `json:"imagenes"`
	Estado         EstadoView       `json:"estado"`
	EstadoApertura AperturaView     `json:"estadoApertura"`
	Categoria      CategoriaView    `json:"categoria"`
	Beneficiario   BeneficiarioView `json:"beneficiario"`
}

type ImagenesView struct {
	Imagen1 *string `json:"imagen1"`
	Imagen2 *string `json:"imagen2"`
	Imagen3 *string `json:"imagen3"`
	Imagen4 *string `json:"imagen4"`
}

type EstadoView struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type AperturaView struct {
	Valor  *int   `json:"valor"`
	Nombre string `json:"nombre"`
}

type CategoriaView struct {
	ID     *int64  `json:"id"`
	Nombre *string `json:"nombre"`
}

type BeneficiarioView struct {
	ID              int64   `json:"id"`
	Nombres         *string `json:"nombres"`
	ApellidoPaterno *string `json:"apellidoPaterno"`
	ApellidoMaterno *string `json:"apellidoMaterno"`
	NombreCompleto  string  `json:"nombreCompleto"`
	Correo          *string `json:"correo"`
	Telefono        *string `json:"telefono"`
}
