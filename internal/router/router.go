package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/attempt"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/middlewares"
	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
)

type RouterConfig struct {
	AllowedOrigins []string
	MaxUploadBytes int64

	AIQuizHandler  *aiquiz.Handler
	QuizHandler    *quiz.Handler
	AttemptHandler *attempt.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))
	r.Use(middlewares.BodyLimit(cfg.MaxUploadBytes))
	r.Use(middlewares.UserLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/ai", aiquiz.Routes(cfg.AIQuizHandler))
	r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	r.Mount("/attempts", attempt.Routes(cfg.AttemptHandler))
	return r
}
