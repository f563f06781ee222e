package quiz

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

type QuizService interface {
	GenerateFromTopic(ctx context.Context, userID string, req aiquiz.GenerateRequest) (*Quiz, error)
	GenerateFromText(ctx context.Context, userID string, sourceType SourceType, text string, meta map[string]interface{}, req aiquiz.GenerateRequest) (*Quiz, error)
	Regenerate(ctx context.Context, quizID uuid.UUID, userID string) (*Quiz, error)
	GetQuiz(ctx context.Context, quizID uuid.UUID) (*QuizWithQuestionsDTO, error)
	ListQuizzes(ctx context.Context, userID string) ([]Summary, error)
	DeleteQuiz(ctx context.Context, quizID uuid.UUID, userID string) error
}

type ServiceOptions struct {
	MinSourceChars        int
	RetainSourceText      bool
	RegenerateTemperature float32
}

type quizService struct {
	repo      QuizRepository
	builder   *quizspec.Builder
	generator aiquiz.Generator
	opts      ServiceOptions
}

func NewService(repo QuizRepository, builder *quizspec.Builder, generator aiquiz.Generator, opts ServiceOptions) QuizService {
	return &quizService{
		repo:      repo,
		builder:   builder,
		generator: generator,
		opts:      opts,
	}
}

func (s *quizService) GenerateFromTopic(ctx context.Context, userID string, req aiquiz.GenerateRequest) (*Quiz, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, apperr.Input("topic is required")
	}

	contract := s.builder.Build(req.SpecRequest(nil))
	description := describeTopic(req.Context())

	q := &Quiz{
		UserID:     userID,
		SourceType: SourceTopic,
		SourceMeta: topicMeta(req.Context()),
		SourceText: &description,
	}
	return s.generateAndStore(ctx, q, contract, req.AllowGeneralKnowledge, req.Context())
}

func (s *quizService) GenerateFromText(ctx context.Context, userID string, sourceType SourceType, text string, meta map[string]interface{}, req aiquiz.GenerateRequest) (*Quiz, error) {
	if sourceType != SourcePDF && sourceType != SourceImages {
		return nil, apperr.Input("unsupported source type %q", sourceType)
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < s.opts.MinSourceChars {
		return nil, apperr.Input("extracted text is too short (%d characters, need at least %d)", n, s.opts.MinSourceChars)
	}

	contract := s.builder.Build(req.SpecRequest(&text))

	q := &Quiz{
		UserID:     userID,
		SourceType: sourceType,
		SourceMeta: datatypes.JSONMap(meta),
	}
	if s.opts.RetainSourceText {
		q.SourceText = &text
	}
	return s.generateAndStore(ctx, q, contract, req.AllowGeneralKnowledge, req.Context())
}

func (s *quizService) Regenerate(ctx context.Context, quizID uuid.UUID, userID string) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID.String())

	orig, _, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if orig.UserID != userID {
		return nil, apperr.NotFound("quiz", quizID.String())
	}

	settings := orig.Settings.Data()
	req := quizspec.Request{
		Language:              settings.Language,
		StrictLanguage:        settings.StrictLanguage,
		Difficulty:            settings.Difficulty,
		QuestionCount:         settings.QuestionCount,
		ChoiceCount:           settings.ChoiceCount,
		Context:               settings.Context,
		AllowGeneralKnowledge: settings.AllowGeneralKnowledge,
		Variation:             uuid.NewString(),
		Temperature:           s.opts.RegenerateTemperature,
	}

	if orig.SourceType == SourceTopic && settings.Context.IsZero() {
		return nil, fmt.Errorf("%w: quiz %s has no stored topic", apperr.ErrNoStoredSource, quizID)
	}
	if orig.SourceType != SourceTopic {
		if !orig.HasSource() {
			return nil, fmt.Errorf("%w: quiz %s was stored without its %s text", apperr.ErrNoStoredSource, quizID, orig.SourceType)
		}
		text := *orig.SourceText
		req.SourceText = &text
	}

	meta := datatypes.JSONMap{}
	for k, v := range orig.SourceMeta {
		meta[k] = v
	}
	meta["regenerated_from"] = quizID.String()

	q := &Quiz{
		UserID:     userID,
		SourceType: orig.SourceType,
		SourceMeta: meta,
	}
	if orig.SourceText != nil {
		text := *orig.SourceText
		q.SourceText = &text
	}

	log.WithField("variation", req.Variation).Info("Regenerating quiz")
	return s.generateAndStore(ctx, q, s.builder.Build(req), settings.AllowGeneralKnowledge, settings.Context)
}

func (s *quizService) generateAndStore(ctx context.Context, q *Quiz, c quizspec.Contract, allowGeneral bool, meta quizspec.ContextMeta) (*Quiz, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"user_id":     q.UserID,
		"source_type": q.SourceType,
		"language":    c.Language,
	})

	result, err := s.generator.Generate(ctx, c)
	if err != nil {
		log.WithError(err).Error("Quiz generation failed")
		return nil, err
	}

	q.Title = result.Title
	q.Language = c.Language
	q.Difficulty = string(c.Difficulty)
	q.Settings = datatypes.NewJSONType(Settings{
		QuestionCount:         c.QuestionCount,
		ChoiceCount:           c.ChoiceCount,
		Difficulty:            string(c.Difficulty),
		Language:              c.Language,
		StrictLanguage:        c.StrictLanguage,
		QuestionType:          c.QuestionType,
		AllowGeneralKnowledge: allowGeneral,
		Context:               meta,
	})
	if q.SourceMeta == nil {
		q.SourceMeta = datatypes.JSONMap{}
	}

	questions := make([]QuizQuestion, len(result.Questions))
	for i, gq := range result.Questions {
		questions[i] = QuizQuestion{
			Type:         gq.Type,
			QuestionText: gq.Question,
			Choices:      datatypes.NewJSONType(gq.Choices),
			Answer:       gq.Answer,
			Explanation:  gq.Explanation,
		}
	}

	id, err := s.repo.CreateQuiz(ctx, q, questions)
	if err != nil {
		log.WithError(err).Error("Failed to store generated quiz")
		return nil, err
	}
	q.Questions = questions

	log.WithFields(logrus.Fields{"quiz_id": id.String(), "questions": len(questions), "calls": result.Calls}).Info("Quiz created")
	return q, nil
}

func (s *quizService) GetQuiz(ctx context.Context, quizID uuid.UUID) (*QuizWithQuestionsDTO, error) {
	q, questions, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return &QuizWithQuestionsDTO{Quiz: q, Questions: questions}, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, userID string) ([]Summary, error) {
	return s.repo.ListQuizzes(ctx, userID)
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID uuid.UUID, userID string) error {
	log := config.WithContext(ctx).WithField("quiz_id", quizID.String())

	q, _, err := s.repo.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if q.UserID != userID {
		return apperr.NotFound("quiz", quizID.String())
	}

	if err := s.repo.DeleteQuiz(ctx, quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}
	log.Info("Quiz deleted")
	return nil
}

// describeTopic renders the topic request as the quiz's source text.
func describeTopic(m quizspec.ContextMeta) string {
	var sb strings.Builder
	fields := []struct{ label, value string }{
		{"Topic", m.Topic},
		{"Subject", m.Subject},
		{"Level", m.Level},
		{"Institution", m.Institution},
		{"Profile", m.Profile},
		{"Notes", m.Notes},
	}
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			sb.WriteString(f.label)
			sb.WriteString(": ")
			sb.WriteString(v)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String())
}

func topicMeta(m quizspec.ContextMeta) datatypes.JSONMap {
	meta := datatypes.JSONMap{}
	for k, v := range map[string]string{
		"topic":       m.Topic,
		"subject":     m.Subject,
		"level":       m.Level,
		"institution": m.Institution,
		"profile":     m.Profile,
	} {
		if v = strings.TrimSpace(v); v != "" {
			meta[k] = v
		}
	}
	return meta
}
