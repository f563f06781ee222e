package quizspec

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a generator of educational multiple-choice quizzes for a study application.

General rules:
1. Every question has exactly one correct answer.
2. The "answer" field must repeat, character for character, one of the strings in "choices".
3. Wrong choices are plausible distractors of similar length and structure to the correct one.
4. Never reveal the answer in the question text.
5. The "explanation" briefly says why the correct answer is right.
6. Reply with pure, valid JSON only. No markdown, no text outside the JSON object.`

func buildRules(c Contract, allowGeneral bool) []string {
	rules := []string{
		fmt.Sprintf("produce exactly %d questions", c.QuestionCount),
		fmt.Sprintf("every question has exactly %d distinct choices", c.ChoiceCount),
		"the answer of every question is exactly one of its choices",
		"no two questions ask the same thing",
		"question text and explanation are never empty",
		fmt.Sprintf("all text is written in %s", c.LanguageName),
	}
	if c.Grounded {
		if allowGeneral {
			rules = append(rules, "correct answers come only from the source text; distractors may use general knowledge")
		} else {
			rules = append(rules, "use only facts stated in the source text; do not introduce outside facts")
		}
	}
	return rules
}

func renderUserPrompt(c Contract, meta ContextMeta, source string, allowGeneral bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple-choice questions", c.QuestionCount))
	if t := strings.TrimSpace(meta.Topic); t != "" {
		sb.WriteString(fmt.Sprintf(" about: %s", t))
	}
	sb.WriteString(".\n\n")

	sb.WriteString(fmt.Sprintf("Language: %s (%s). Write every question, choice and explanation in %s.\n", c.LanguageName, c.Language, c.LanguageName))
	sb.WriteString(fmt.Sprintf("Difficulty: %s.\n", c.Difficulty.descriptor()))
	sb.WriteString(fmt.Sprintf("Choices per question: exactly %d.\n", c.ChoiceCount))

	if ctx := renderContext(meta); ctx != "" {
		sb.WriteString("\nContext:\n")
		sb.WriteString(ctx)
	}

	sb.WriteString("\n")
	if c.Grounded {
		sb.WriteString("Use ONLY the source text below. Do not introduce facts that are not stated in it.\n")
		if allowGeneral {
			sb.WriteString("Wrong choices may draw on general knowledge, but every correct answer must be supported by the source text.\n")
		}
		sb.WriteString("\nSource text:\n\"\"\"\n")
		sb.WriteString(source)
		sb.WriteString("\n\"\"\"\n")
	} else {
		sb.WriteString("No source text was provided. You may use general domain knowledge, staying within the topic and context above.\n")
	}

	sb.WriteString("\nRequirements:\n")
	for _, r := range c.Rules {
		sb.WriteString("- ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nReturn a JSON object: {\"title\": string, \"language\": %q, \"questions\": [{\"type\": %q, \"question\": string, \"choices\": [string], \"answer\": string, \"explanation\": string}]}.\n",
		c.Language, c.QuestionType))

	if c.Variation != "" {
		sb.WriteString(fmt.Sprintf("\nVariation token: %s. Produce a set of questions different from any earlier quiz on this material: pick other facts, angles and wording.\n", c.Variation))
	}

	return sb.String()
}

func renderContext(m ContextMeta) string {
	var sb strings.Builder
	fields := []struct{ label, value string }{
		{"Subject", m.Subject},
		{"Level", m.Level},
		{"Institution", m.Institution},
		{"Learner profile", m.Profile},
		{"Notes", m.Notes},
	}
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", f.label, v))
		}
	}
	return sb.String()
}
