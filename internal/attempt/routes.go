package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Start)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/answers", h.SubmitAnswer)
	r.Post("/{id}/finish", h.Finish)
	return r
}
