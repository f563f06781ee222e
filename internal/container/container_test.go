package container

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz"
	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz/aiquiztest"
	"github.com/saulo-duarte/quizgen-lambda/internal/attempt"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/database/dbtest"
	"github.com/saulo-duarte/quizgen-lambda/internal/quiz"
)

func testConfig() *config.Config {
	return &config.Config{
		AIProvider:            config.ProviderOpenAI,
		AICallTimeout:         time.Second,
		RegenerateTemperature: 0.9,
		DefaultLanguage:       "en",
		MaxSourceChars:        60000,
		MinSourceChars:        50,
		RetainSourceText:      true,
		StoreTransactional:    true,
		AllowedOrigins:        []string{"*"},
		MaxUploadBytes:        1 << 20,
	}
}

func call(t *testing.T, h http.Handler, method, path, body string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(config.UserHeader, "student-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestTopicQuizToFinishedAttempt(t *testing.T) {
	p := &aiquiztest.Provider{Responses: []string{aiquiztest.Payload("Photosynthesis", "en", 3, 4)}}
	c, err := NewWithProvider(context.Background(), testConfig(), dbtest.Open(t), p)
	require.NoError(t, err)
	h := c.Handler()

	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/healthz", "", nil))

	var created quiz.CreatedDTO
	code := call(t, h, http.MethodPost, "/quizzes/topic", `{"topic":"Photosynthesis","question_count":3}`, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 3, created.TotalQuestions)

	var full quiz.QuizWithQuestionsDTO
	require.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/quizzes/"+created.ID, "", &full))
	require.Len(t, full.Questions, 3)

	var a attempt.Attempt
	require.Equal(t, http.StatusCreated, call(t, h, http.MethodPost, "/attempts", fmt.Sprintf(`{"quiz_id":%q}`, created.ID), &a))

	q0, q1 := full.Questions[0], full.Questions[1]
	wrong := q1.Choices.Data()[0]
	if wrong == q1.Answer {
		wrong = q1.Choices.Data()[1]
	}
	answers := map[string]string{q0.ID.String(): q0.Answer, q1.ID.String(): wrong}
	for qid, ans := range answers {
		body := fmt.Sprintf(`{"question_id":%q,"answer":%q}`, qid, ans)
		require.Equal(t, http.StatusOK, call(t, h, http.MethodPut, "/attempts/"+a.ID.String()+"/answers", body, nil))
	}

	var finished attempt.Attempt
	require.Equal(t, http.StatusOK, call(t, h, http.MethodPost, "/attempts/"+a.ID.String()+"/finish", "", &finished))
	assert.Equal(t, 1, finished.Score)
	assert.Equal(t, 3, finished.Total)

	require.Equal(t, http.StatusOK, call(t, h, http.MethodDelete, "/quizzes/"+created.ID, "", nil))
	assert.Equal(t, http.StatusNotFound, call(t, h, http.MethodGet, "/attempts/"+a.ID.String(), "", nil))
}

func TestUploadRejectedWithoutExtraction(t *testing.T) {
	c, err := NewWithProvider(context.Background(), testConfig(), dbtest.Open(t), &aiquiztest.Provider{})
	require.NoError(t, err)
	assert.Nil(t, c.gcp)

	code := call(t, c.Handler(), http.MethodPost, "/quizzes/upload", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	p := &aiquiztest.Provider{Responses: []string{aiquiztest.Payload("Rivers", "en", 2, 3)}}
	db := dbtest.Open(t)
	c, err := NewWithProvider(context.Background(), testConfig(), db, p)
	require.NoError(t, err)
	h := c.Handler()

	var res aiquiz.Result
	code := call(t, h, http.MethodPost, "/ai/preview", `{"topic":"Rivers","question_count":2,"choice_count":3}`, &res)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, res.Questions, 2)
	for i, q := range res.Questions {
		assert.Equal(t, i, q.Idx)
		assert.Contains(t, q.Choices, q.Answer)
	}

	var n int64
	require.NoError(t, db.Model(&quiz.Quiz{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestNewFailsWithUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseDSN = dbtest.DSN()
	cfg.AIProvider = "llama"

	c, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, c)
}
