package cases

import (
	"fmt"
	"strings"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"
)

var estadoNombres = map[int]string{
	int(types.CasoEstadoActivo):     "Activo",
	int(types.CasoEstadoEnRevision): "En Revisión",
	int(types.CasoEstadoPausado):    "Pausado",
	int(types.CasoEstadoRechazado):  "Rechazado",
	int(types.CasoEstadoConcluido):  "Concluido",
}

// EstadoNombre translates a state code into its label. Unknown codes render
// as "Desconocido" rather than failing.
func EstadoNombre(idEstado int) string {
	if nombre, ok := estadoNombres[idEstado]; ok {
		return nombre
	}
	return "Desconocido"
}

func aperturaNombre(estaAbierto int) string {
	if estaAbierto == 1 {
		return "Abierto"
	}
	return "Cerrado"
}

// BuildCaseView shapes a joined caso row into the nested client projection.
// Pure; a missing category link or beneficiary yields nil nested fields, it
// never errors.
func BuildCaseView(row *types.CasoRow) *types.CaseView {

	// A row with no esta_abierto value counts as open.
	apertura := 1
	if row.EstaAbierto != nil {
		apertura = *row.EstaAbierto
	}

	nombreCompleto := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		utils.PtrString(row.NombresBeneficiario),
		utils.PtrString(row.ApellidoPaternoBeneficiario),
		utils.PtrString(row.ApellidoMaternoBeneficiario),
	))

	return &types.CaseView{
		ID:             row.ID,
		Titulo:         row.Titulo,
		Descripcion:    row.Descripcion,
		MontoObjetivo:  row.MontoObjetivo,
		MontoRecaudado: row.MontoRecaudado,
		Entidad:        row.Entidad,
		Direccion:      row.Direccion,
		FechaLimite:    row.FechaLimite,
		FechaCreacion:  row.FechaCreacion,
		Imagenes: types.ImagenesView{
			Imagen1: row.Imagen1,
			Imagen2: row.Imagen2,
			Imagen3: row.Imagen3,
			Imagen4: row.Imagen4,
		},
		Estado: types.EstadoView{
			ID:     row.IDEstado,
			Nombre: EstadoNombre(row.IDEstado),
		},
		EstadoApertura: types.AperturaView{
			Valor:  row.EstaAbierto,
			Nombre: aperturaNombre(apertura),
		},
		Categoria: types.CategoriaView{
			ID:     row.IDCategoria,
			Nombre: row.NombreCategoria,
		},
		Beneficiario: types.BeneficiarioView{
			ID:              row.IDBeneficiario,
			Nombres:         row.NombresBeneficiario,
			ApellidoPaterno: row.ApellidoPaternoBeneficiario,
			ApellidoMaterno: row.ApellidoMaternoBeneficiario,
			NombreCompleto:  nombreCompleto,
			Correo:          row.CorreoBeneficiario,
			Telefono:        row.TelefonoBeneficiario,
		},
	}
}
