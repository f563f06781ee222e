package quiz

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/extract"
)

const multipartMemory = 8 << 20

type Handler struct {
	service   QuizService
	extractor extract.Extractor
}

// NewHandler builds the quiz handler. extractor may be nil, in which case
// uploads are rejected.
func NewHandler(s QuizService, extractor extract.Extractor) *Handler {
	return &Handler{service: s, extractor: extractor}
}

func (h *Handler) GenerateFromTopic(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	var req aiquiz.GenerateRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, err)
		return
	}

	q, err := h.service.GenerateFromTopic(r.Context(), userID, req)
	if err != nil {
		log.WithError(err).Error("Failed to generate topic quiz")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, created(q))
}

func (h *Handler) GenerateFromUpload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}
	if h.extractor == nil {
		config.Error(w, apperr.Input("file uploads are not enabled"))
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		config.Error(w, apperr.Input("invalid multipart body: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	sourceType := SourceType(strings.ToLower(r.FormValue("source_type")))
	if !sourceType.Valid() || sourceType == SourceTopic {
		config.Error(w, apperr.Input("source_type must be pdf or images"))
		return
	}

	headers := r.MultipartForm.File["files"]
	files, err := readFiles(headers)
	if err != nil {
		config.Error(w, err)
		return
	}

	req := formRequest(r)
	if strings.TrimSpace(req.Topic) == "" && len(files) > 0 {
		req.Topic = files[0].Name
	}
	if err := config.Validate(&req); err != nil {
		config.Error(w, err)
		return
	}

	text, err := h.extractor.Extract(r.Context(), extract.Kind(sourceType), files)
	if err != nil {
		log.WithError(err).Error("Failed to extract uploaded files")
		config.Error(w, err)
		return
	}

	q, err := h.service.GenerateFromText(r.Context(), userID, sourceType, text, uploadMeta(sourceType, files), req)
	if err != nil {
		log.WithError(err).Error("Failed to generate quiz from upload")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, created(q))
}

func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}
	quizID, err := pathID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	q, err := h.service.Regenerate(r.Context(), quizID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to regenerate quiz")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, created(q))
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	dto, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, dto)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	quizzes, err := h.service.ListQuizzes(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list quizzes")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := config.UserID(r)
	if err != nil {
		config.Error(w, err)
		return
	}
	quizID, err := pathID(r)
	if err != nil {
		config.Error(w, err)
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), quizID, userID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		config.Error(w, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Input("invalid quiz id %q", raw)
	}
	return id, nil
}

func created(q *Quiz) CreatedDTO {
	return CreatedDTO{ID: q.ID.String(), Title: q.Title, TotalQuestions: q.TotalQuestions}
}

func readFiles(headers []*multipart.FileHeader) ([]extract.File, error) {
	files := make([]extract.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.Input("cannot read file %q", fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, apperr.Input("cannot read file %q", fh.Filename)
		}

		mt := fh.Header.Get("Content-Type")
		if mt == "" || mt == "application/octet-stream" {
			mt = http.DetectContentType(data)
		}
		files = append(files, extract.File{Name: fh.Filename, MIMEType: mt, Data: data})
	}
	return files, nil
}

func formRequest(r *http.Request) aiquiz.GenerateRequest {
	return aiquiz.GenerateRequest{
		Topic:                 r.FormValue("topic"),
		Subject:               r.FormValue("subject"),
		Level:                 r.FormValue("level"),
		Institution:           r.FormValue("institution"),
		Profile:               r.FormValue("profile"),
		Notes:                 r.FormValue("notes"),
		Language:              r.FormValue("language"),
		StrictLanguage:        formBool(r, "strict_language"),
		Difficulty:            r.FormValue("difficulty"),
		QuestionCount:         formInt(r, "question_count"),
		ChoiceCount:           formInt(r, "choice_count"),
		AllowGeneralKnowledge: formBool(r, "allow_general_knowledge"),
	}
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n
}

func formBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(r.FormValue(key)))
	return b
}

func uploadMeta(sourceType SourceType, files []extract.File) map[string]interface{} {
	names := make([]string, len(files))
	var size int
	for i, f := range files {
		names[i] = f.Name
		size += len(f.Data)
	}

	meta := map[string]interface{}{"size_bytes": size}
	if sourceType == SourcePDF {
		meta["filename"] = names[0]
	} else {
		meta["filenames"] = names
		meta["image_count"] = len(files)
	}
	return meta
}
