package aiquiz

import (
	"net/http"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, err)
		return
	}

	result, err := h.service.Preview(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("Failed to generate quiz preview")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}
