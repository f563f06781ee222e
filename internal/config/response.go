package config

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes err using the status and code of its apperr category.
func Error(w http.ResponseWriter, err error) {
	status, code := apperr.Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && code == "internal_error" {
		msg = "internal server error"
	}
	JSON(w, status, errorResponse{Error: msg, Code: code})
}
