package cases

import (
	"testing"
	"time"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	"github.com/stretchr/testify/assert"
)

func sampleRow() *types.CasoRow {
	return &types.CasoRow{
		Caso: types.Caso{
			ID:             12,
			IDBeneficiario: 4,
			IDEstado:       int(types.CasoEstadoActivo),
			Titulo:         "Tratamiento médico",
			Descripcion:    "Apoyo para cirugía",
			MontoObjetivo:  25000,
			MontoRecaudado: 1200.50,
			Entidad:        "Hospital General",
			Direccion:      "Av. Reforma 100",
			FechaLimite:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			FechaCreacion:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			EstaAbierto:    utils.IntPtr(1),
		},
		IDCategoria:                 utils.Int64Ptr(2),
		NombreCategoria:             utils.StringPtr("Salud"),
		NombresBeneficiario:         utils.StringPtr("María"),
		ApellidoPaternoBeneficiario: utils.StringPtr("López"),
		ApellidoMaternoBeneficiario: utils.StringPtr("Hernández"),
		CorreoBeneficiario:          utils.StringPtr("maria@example.com"),
		TelefonoBeneficiario:        utils.StringPtr("5512345678"),
	}
}

func TestEstadoNombre(t *testing.T) {
	tests := []struct {
		idEstado int
		want     string
	}{
		{1, "Activo"},
		{2, "En Revisión"},
		{3, "Pausado"},
		{4, "Rechazado"},
		{5, "Concluido"},
		{0, "Desconocido"},
		{6, "Desconocido"},
		{-1, "Desconocido"},
		{99, "Desconocido"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EstadoNombre(tt.idEstado))
	}
}

func TestBuildCaseView(t *testing.T) {
	view := BuildCaseView(sampleRow())

	assert.Equal(t, int64(12), view.ID)
	assert.Equal(t, "Tratamiento médico", view.Titulo)
	assert.Equal(t, types.EstadoView{ID: 1, Nombre: "Activo"}, view.Estado)
	assert.Equal(t, "Abierto", view.EstadoApertura.Nombre)
	assert.Equal(t, 1, utils.PtrInt(view.EstadoApertura.Valor))
	assert.Equal(t, "Salud", utils.PtrString(view.Categoria.Nombre))
	assert.Equal(t, "María López Hernández", view.Beneficiario.NombreCompleto)
}

func TestBuildCaseViewUnknownEstado(t *testing.T) {
	row := sampleRow()
	row.IDEstado = 42

	view := BuildCaseView(row)
	assert.Equal(t, "Desconocido", view.Estado.Nombre)
}

func TestBuildCaseViewAperturaCerrado(t *testing.T) {
	row := sampleRow()
	row.EstaAbierto = utils.IntPtr(0)

	view := BuildCaseView(row)
	assert.Equal(t, "Cerrado", view.EstadoApertura.Nombre)
}

func TestBuildCaseViewAperturaDefaultsToAbierto(t *testing.T) {
	row := sampleRow()
	row.EstaAbierto = nil

	view := BuildCaseView(row)
	assert.Equal(t, "Abierto", view.EstadoApertura.Nombre)
	assert.Nil(t, view.EstadoApertura.Valor)
}

func TestBuildCaseViewImagenesPassthrough(t *testing.T) {
	row := sampleRow()
	row.Imagen2 = utils.StringPtr("https://bucket.s3.us-east-2.amazonaws.com/cases/case_12/image_2_x.jpg")

	view := BuildCaseView(row)
	assert.Nil(t, view.Imagenes.Imagen1)
	assert.Equal(t, *row.Imagen2, utils.PtrString(view.Imagenes.Imagen2))
	assert.Nil(t, view.Imagenes.Imagen3)
	assert.Nil(t, view.Imagenes.Imagen4)
}

func TestBuildCaseViewMissingCategoryLink(t *testing.T) {
	row := sampleRow()
	row.IDCategoria = nil
	row.NombreCategoria = nil

	view := BuildCaseView(row)
	assert.Nil(t, view.Categoria.ID)
	assert.Nil(t, view.Categoria.Nombre)
}

func TestBuildCaseViewNombreCompletoTrimmed(t *testing.T) {
	row := sampleRow()
	row.NombresBeneficiario = nil
	row.ApellidoPaternoBeneficiario = utils.StringPtr("López")
	row.ApellidoMaternoBeneficiario = nil

	view := BuildCaseView(row)
	assert.Equal(t, "López", view.Beneficiario.NombreCompleto)
}
