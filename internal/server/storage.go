package server

import (
	"io"
	"net/http"
	"strings"
)

// handleUploadObject stores an arbitrary file in the bucket and returns its
// public URL. The object key defaults to the uploaded filename.
func (s *Service) handleUploadObject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "Formulario multipart inválido")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "El archivo 'file' es obligatorio")
		return
	}
	defer file.Close()

	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		key = header.Filename
	}

	url, err := s.blobs.Upload(r.Context(), key, file, header.Header.Get("Content-Type"))
	if err != nil {
		s.logger.WithError(err).Error("failed to upload object")
		s.respondError(w, http.StatusInternalServerError, "No se pudo subir el archivo")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"key":     key,
		"url":     url,
	})
}

func (s *Service) handleDetectFaces(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "Formulario multipart inválido")
		return
	}

	file, _, err := r.FormFile("imagen")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "La imagen es obligatoria")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "No se pudo leer la imagen")
		return
	}

	detection, err := s.recognizer.DetectFaces(r.Context(), image)
	if err != nil {
		s.logger.WithError(err).Error("failed to detect faces")
		s.respondError(w, http.StatusInternalServerError, "No se pudo analizar la imagen")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    detection,
	})
}
