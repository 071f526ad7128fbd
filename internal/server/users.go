package server

import (
	"encoding/json"
	"net/http"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

func (s *Service) handleListUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := s.usersRepo.AllUsuarios(r.Context())
	if err != nil {
		s.respondUsuarioError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"total":   len(usuarios),
		"data":    usuarios,
	})
}

func (s *Service) handleGetUsuario(w http.ResponseWriter, r *http.Request) {
	usuarioID := s.pathID(w, r)
	if usuarioID == 0 {
		return
	}

	usuario, err := s.usersRepo.UsuarioByID(r.Context(), usuarioID)
	if err != nil {
		s.respondUsuarioError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, usuarioResponse{Success: true, Data: usuario})
}

func (s *Service) handleUpdateUsuario(w http.ResponseWriter, r *http.Request) {
	usuarioID := s.pathID(w, r)
	if usuarioID == 0 {
		return
	}

	var upd types.UsuarioUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	// Passwords are stored hashed, never as the raw request value.
	if upd.Contrasena != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			s.logger.WithError(err).Error("failed to hash contrasena")
			s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
			return
		}
		upd.Contrasena = utils.StringPtr(string(hash))
	}

	if !upd.Empty() {
		if err := s.usersRepo.UpdateUsuario(r.Context(), usuarioID, &upd); err != nil {
			s.respondUsuarioError(w, err)
			return
		}
	}

	usuario, err := s.usersRepo.UsuarioByID(r.Context(), usuarioID)
	if err != nil {
		s.respondUsuarioError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, usuarioResponse{
		Success: true,
		Message: "Usuario actualizado exitosamente",
		Data:    usuario,
	})
}

func (s *Service) handleDeleteUsuario(w http.ResponseWriter, r *http.Request) {
	usuarioID := s.pathID(w, r)
	if usuarioID == 0 {
		return
	}

	if err := s.usersRepo.DeleteUsuario(r.Context(), usuarioID); err != nil {
		s.respondUsuarioError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Usuario eliminado exitosamente",
	})
}
