package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"aquiestoy/internal/cases"
	"aquiestoy/pkg/types"
)

// maxUploadBytes bounds the whole multipart payload, all four image slots
// included.
const maxUploadBytes = 32 << 20

type createCasoForm struct {
	IDBeneficiario int64   `form:"idBeneficiario"`
	IDCategoria    int64   `form:"idCategoria"`
	Titulo         string  `form:"titulo"`
	Descripcion    string  `form:"descripcion"`
	MontoObjetivo  float64 `form:"montoObjetivo"`
	Entidad        string  `form:"entidad"`
	Direccion      string  `form:"direccion"`
	FechaLimite    string  `form:"fechaLimite"`
}

type caseCreateResponse struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message"`
	CasoID          int64           `json:"caso_id"`
	ImagenesSubidas int             `json:"imagenes_subidas"`
	Data            *types.CaseView `json:"data"`
}

type caseResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    *types.CaseView `json:"data"`
}

type caseListResponse struct {
	Success bool              `json:"success"`
	Total   int               `json:"total"`
	Data    []*types.CaseView `json:"data"`
}

func (s *Service) handleCreateCaso(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "Formulario multipart inválido")
		return
	}

	var input createCasoForm
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.respondError(w, http.StatusBadRequest, "Datos del caso inválidos")
		return
	}

	imagenes, closeImagenes, err := s.collectImagenes(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "No se pudieron leer las imágenes")
		return
	}
	defer closeImagenes()

	result, err := s.cases.Create(r.Context(), cases.CreateCaseInput{
		IDBeneficiario: input.IDBeneficiario,
		IDCategoria:    input.IDCategoria,
		Titulo:         input.Titulo,
		Descripcion:    input.Descripcion,
		MontoObjetivo:  input.MontoObjetivo,
		Entidad:        input.Entidad,
		Direccion:      input.Direccion,
		FechaLimite:    input.FechaLimite,
		Imagenes:       imagenes,
	})
	if err != nil {
		s.respondCaseError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, caseCreateResponse{
		Success:         true,
		Message:         "Caso creado exitosamente con imágenes",
		CasoID:          result.CasoID,
		ImagenesSubidas: result.ImagenesSubidas,
		Data:            result.Caso,
	})
}

// collectImagenes pulls the optional imagen1..imagen4 file parts out of the
// multipart form. The returned closer releases every opened part.
func (s *Service) collectImagenes(r *http.Request) ([]cases.ImageUpload, func(), error) {
	var (
		imagenes []cases.ImageUpload
		closers  []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	for slot := 1; slot <= 4; slot++ {
		headers := r.MultipartForm.File[fmt.Sprintf("imagen%d", slot)]
		if len(headers) == 0 {
			continue
		}

		header := headers[0]
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, file.Close)

		imagenes = append(imagenes, cases.ImageUpload{
			Slot:        slot,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	return imagenes, closeAll, nil
}

func (s *Service) handleListCasos(w http.ResponseWriter, r *http.Request) {
	views, err := s.cases.List(r.Context())
	if err != nil {
		s.respondCaseError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, caseListResponse{
		Success: true,
		Total:   len(views),
		Data:    views,
	})
}

func (s *Service) handleGetCaso(w http.ResponseWriter, r *http.Request) {
	casoID := s.pathID(w, r)
	if casoID == 0 {
		return
	}

	view, err := s.cases.Get(r.Context(), casoID)
	if err != nil {
		s.respondCaseError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, caseResponse{Success: true, Data: view})
}

func (s *Service) handleUpdateCaso(w http.ResponseWriter, r *http.Request) {
	casoID := s.pathID(w, r)
	if casoID == 0 {
		return
	}

	var upd types.CasoUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	view, err := s.cases.Update(r.Context(), casoID, &upd)
	if err != nil {
		s.respondCaseError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, caseResponse{
		Success: true,
		Message: "Caso actualizado exitosamente",
		Data:    view,
	})
}

func (s *Service) handleDeleteCaso(w http.ResponseWriter, r *http.Request) {
	casoID := s.pathID(w, r)
	if casoID == 0 {
		return
	}

	titulo, err := s.cases.Delete(r.Context(), casoID)
	if err != nil {
		s.respondCaseError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Caso '%s' eliminado exitosamente", titulo),
	})
}

func (s *Service) handleListCategorias(w http.ResponseWriter, r *http.Request) {
	categorias, err := s.categoriesRepo.AllCategorias(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list categorias")
		s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"total":   len(categorias),
		"data":    categorias,
	})
}
