package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"aquiestoy/pkg/types"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Success: false, Message: message})
}

// respondCaseError maps workflow errors onto HTTP statuses. Validation
// messages go back to the caller; driver and storage details stay in the logs.
func (s *Service) respondCaseError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		s.respondError(w, http.StatusBadRequest, verr.Error())
		return
	}

	if errors.Is(err, types.ErrCasoNotFound) {
		s.respondError(w, http.StatusNotFound, "Caso no encontrado")
		return
	}

	var cerr *types.CaseCreationError
	if errors.As(err, &cerr) {
		s.logger.WithError(err).Error("caso creation aborted")
		s.respondError(w, http.StatusInternalServerError, "No se pudo crear el caso")
		return
	}

	s.logger.WithError(err).Error("caso request failed")
	s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
}

func (s *Service) respondUsuarioError(w http.ResponseWriter, err error) {
	if errors.Is(err, types.ErrUsuarioNotFound) {
		s.respondError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	s.logger.WithError(err).Error("usuario request failed")
	s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
}
