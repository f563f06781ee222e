package aiquiz_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgen-lambda/internal/aiquiz/aiquiztest"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

func TestGenerateLogsEveryExchange(t *testing.T) {
	logger := config.Logger()
	hook := test.NewLocal(logger)
	level := logger.GetLevel()
	logger.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logger.SetLevel(level)
		logger.ReplaceHooks(make(logrus.LevelHooks))
	})

	p := &aiquiztest.Provider{Responses: []string{"not json", aiquiztest.Payload("Tides", "en", 2, 4)}}
	c := contract(quizspec.Request{Context: quizspec.ContextMeta{Topic: "Tides"}, QuestionCount: 2, ChoiceCount: 4})

	_, err := newEngine(p).Generate(context.Background(), c)
	require.NoError(t, err)

	var requests, responses int
	runIDs := map[interface{}]bool{}
	for _, e := range hook.AllEntries() {
		if e.Level != logrus.DebugLevel {
			continue
		}
		runIDs[e.Data["run_id"]] = true
		switch {
		case strings.HasPrefix(e.Message, "Model request:"):
			requests++
		case strings.HasPrefix(e.Message, "Raw model output:"):
			responses++
		}
	}

	// the first request is the original prompt, the second the repair
	assert.Contains(t, debugMessages(hook.AllEntries()), "Model request:\n"+c.UserPrompt)
	assert.Equal(t, 2, requests)
	assert.Equal(t, 2, responses)
	assert.Len(t, runIDs, 1)
	assert.NotContains(t, runIDs, nil)
}

func debugMessages(entries []*logrus.Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Level == logrus.DebugLevel {
			out = append(out, e.Message)
		}
	}
	return out
}
