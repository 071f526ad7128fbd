package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"aquiestoy/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	IDTipoUsuario int    `json:"idTipoUsuario"`
	Nombres       string `json:"nombres"`
	ApellidoP     string `json:"apellidoPaterno"`
	ApellidoM     string `json:"apellidoMaterno"`
	Correo        string `json:"correo"`
	Contrasena    string `json:"contrasena"`
	Telefono      string `json:"telefono"`
	Direccion     string `json:"direccion"`
	Colonia       string `json:"colonia"`
	CodigoPostal  string `json:"codigoPostal"`
	Ciudad        string `json:"ciudad"`
	Estado        string `json:"estado"`
}

type loginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

type usuarioResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    *types.Usuario `json:"data"`
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if req.Correo == "" || req.Contrasena == "" {
		s.respondError(w, http.StatusBadRequest, "Correo y contraseña son obligatorios")
		return
	}

	_, err := s.usersRepo.UsuarioByCorreo(r.Context(), req.Correo)
	if err == nil {
		s.respondError(w, http.StatusBadRequest, "El correo electrónico ya está registrado")
		return
	}
	if !errors.Is(err, types.ErrUsuarioNotFound) {
		s.respondUsuarioError(w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash contrasena")
		s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	usuario := &types.Usuario{
		IDTipoUsuario: req.IDTipoUsuario,
		Nombres:       req.Nombres,
		ApellidoP:     req.ApellidoP,
		ApellidoM:     req.ApellidoM,
		Correo:        req.Correo,
		Contrasena:    string(hash),
		Telefono:      req.Telefono,
		Direccion:     req.Direccion,
		Colonia:       req.Colonia,
		CodigoPostal:  req.CodigoPostal,
		Ciudad:        req.Ciudad,
		Estado:        req.Estado,
		EstaActivo:    1,
	}

	if err := s.usersRepo.CreateUsuario(r.Context(), usuario); err != nil {
		s.logger.WithError(err).Error("failed to register usuario")
		s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	s.respondJSON(w, http.StatusOK, usuarioResponse{
		Success: true,
		Message: "Usuario registrado exitosamente",
		Data:    usuario,
	})
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	usuario, err := s.usersRepo.UsuarioByCorreo(r.Context(), req.Correo)
	if err != nil {
		if errors.Is(err, types.ErrUsuarioNotFound) {
			s.respondError(w, http.StatusUnauthorized, "Correo o contraseña incorrectos")
			return
		}
		s.respondUsuarioError(w, err)
		return
	}

	if usuario.EstaActivo != 1 {
		s.respondError(w, http.StatusForbidden, "Usuario inactivo")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(req.Contrasena)); err != nil {
		s.respondError(w, http.StatusUnauthorized, "Correo o contraseña incorrectos")
		return
	}

	if err := s.setSessionCookie(w, usuario.ID); err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		s.respondError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	s.respondJSON(w, http.StatusOK, usuarioResponse{
		Success: true,
		Message: "Inicio de sesión exitoso",
		Data:    usuario,
	})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Sesión cerrada exitosamente",
	})
}

func (s *Service) setSessionCookie(w http.ResponseWriter, usuarioID int64) error {
	encoded, err := s.cookie.Encode(s.config.CookieName, usuarioID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   s.config.SessionMaxAgeSec,
	})
	return nil
}

func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
