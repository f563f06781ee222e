package attempt

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	var dto StartAttemptDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.Error(w, err)
		return
	}

	quizID, err := uuid.Parse(dto.QuizID)
	if err != nil {
		config.Error(w, apperr.Input("invalid quiz id %q", dto.QuizID))
		return
	}

	a, err := h.service.Start(r.Context(), quizID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to start attempt")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, a)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a, ok := h.owned(w, r)
	if !ok {
		return
	}

	var dto SubmitAnswerDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.Error(w, err)
		return
	}

	questionID, err := uuid.Parse(dto.QuestionID)
	if err != nil {
		config.Error(w, apperr.Input("invalid question id %q", dto.QuestionID))
		return
	}

	correct, err := h.service.SubmitAnswer(r.Context(), a.ID, questionID, dto.Answer)
	if err != nil {
		log.WithError(err).Error("Failed to submit answer")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, SubmitAnswerResponse{QuestionID: dto.QuestionID, IsCorrect: correct})
}

func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a, ok := h.owned(w, r)
	if !ok {
		return
	}

	finished, err := h.service.Finish(r.Context(), a.ID)
	if err != nil {
		log.WithError(err).Error("Failed to finish attempt")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, finished)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.owned(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	attempts, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list attempts")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, attempts)
}

// owned loads the attempt named in the path and checks it belongs to the
// caller. Attempts of other users are reported as missing.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*Attempt, bool) {
	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return nil, false
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		config.Error(w, apperr.Input("invalid attempt id %q", idStr))
		return nil, false
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		config.Error(w, err)
		return nil, false
	}
	if a.UserID != userID {
		config.Error(w, apperr.NotFound("attempt", idStr))
		return nil, false
	}
	return a, true
}
