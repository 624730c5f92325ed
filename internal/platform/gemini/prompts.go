package gemini

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/scry-notes/internal/generation"
)

const summaryPrompt = `You are summarizing a student's notes.
Write a summary of at most {{.MaxSentences}} sentences.
Respond with the summary as plain text only, without headings or lists.

Notes:
{{.Text}}
`

const questionPrompt = `You are writing a flashcard for a student.
Write exactly one {{if eq .QuestionStyle "compact"}}short {{end}}study question that the paragraph below answers.
Respond with the question only.

Paragraph:
{{.Text}}
`

var prompts = map[generation.Operation]*template.Template{
	generation.OperationSummarize: template.Must(template.New("summary").Parse(summaryPrompt)),
	generation.OperationQuestion:  template.Must(template.New("question").Parse(questionPrompt)),
}

// promptData represents the data passed to the prompt templates
type promptData struct {
	Text          string
	MaxSentences  int
	QuestionStyle string
}

// renderPrompt builds the prompt for req from its operation's template.
func renderPrompt(req generation.Request) (string, error) {
	tmpl, ok := prompts[req.Operation]
	if !ok {
		return "", fmt.Errorf("%w: gemini: %s", generation.ErrUnsupportedOperation, req.Operation)
	}

	data := promptData{
		Text:          req.Text,
		MaxSentences:  req.MaxSentences,
		QuestionStyle: req.QuestionStyle,
	}
	if data.MaxSentences <= 0 {
		data.MaxSentences = 3
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
