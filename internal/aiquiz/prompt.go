package aiquiz

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saulo-duarte/quizgen-lambda/internal/quizspec"
)

const maxEchoedOutput = 12000

// repairPrompt asks the model to fix its previous answer. It repeats the
// original request so the model does not lose the source text.
func repairPrompt(c quizspec.Contract, previous string, cause error) string {
	var sb strings.Builder

	sb.WriteString(c.UserPrompt)
	sb.WriteString("\n\nYour previous answer was rejected.\n\nPrevious answer:\n\"\"\"\n")
	sb.WriteString(truncateOutput(previous))
	sb.WriteString("\n\"\"\"\n\nProblems found:\n")

	switch e := cause.(type) {
	case *SemanticError:
		for _, v := range e.Violations {
			sb.WriteString("- ")
			sb.WriteString(v.String())
			sb.WriteString("\n")
		}
	case *FormatError:
		sb.WriteString("- the answer is not a valid JSON object of the requested shape: ")
		sb.WriteString(e.Reason)
		sb.WriteString("\n")
	default:
		sb.WriteString("- ")
		sb.WriteString(cause.Error())
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(
		"\nReturn a corrected JSON object with exactly %d questions, each with exactly %d distinct choices and an answer copied exactly from its choices. Reply with the JSON object only.\n",
		c.QuestionCount, c.ChoiceCount))

	return sb.String()
}

func truncateOutput(s string) string {
	if utf8.RuneCountInString(s) <= maxEchoedOutput {
		return s
	}
	return string([]rune(s)[:maxEchoedOutput]) + "..."
}
