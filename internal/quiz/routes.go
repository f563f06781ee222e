package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/topic", h.GenerateFromTopic)
	r.Post("/upload", h.GenerateFromUpload)
	r.Get("/", h.ListQuizzes)
	r.Get("/{id}", h.GetQuiz)
	r.Delete("/{id}", h.DeleteQuiz)
	r.Post("/{id}/regenerate", h.Regenerate)
	return r
}
