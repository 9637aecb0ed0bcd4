// Package prompt composes the generation prompt and the structural output
// envelope.
package prompt

import (
	"fmt"
	"strings"

	"asknova-be/internal/constant"
	"asknova-be/internal/entity"
)

// RenderTranscript renders the session transcript as alternating
// "role: content" blocks, including any training data the turn used.
func RenderTranscript(messages []entity.Message) string {
	if len(messages) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		block := fmt.Sprintf("%s: %s", msg.Role, msg.Content)
		if msg.TrainingData != "" {
			block += fmt.Sprintf("\n\nTraining Data Used: %s", msg.TrainingData)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// Compose builds the full generation prompt: system block, transcript
// (which already includes the just-appended user turn), continuation
// instruction, the current user message, and the training-data reference.
func Compose(transcript []entity.Message, userPrompt, trainingData string) string {
	var b strings.Builder
	b.WriteString(constant.SystemPrompt)
	b.WriteString("\nPrevious conversation:\n")
	b.WriteString(RenderTranscript(transcript))
	b.WriteString("\n")
	b.WriteString(constant.ContinuePrompt)
	b.WriteString("\nCurrent user message: ")
	b.WriteString(userPrompt)
	if trainingData != "" {
		b.WriteString("\nAvailable training data: ")
		b.WriteString(trainingData)
	}
	return b.String()
}

// WrapEnvelope ensures the generated text carries the structural output
// marker, wrapping bare responses in the fixed envelope.
func WrapEnvelope(response string) string {
	if strings.Contains(response, "<code>") {
		return response
	}
	return fmt.Sprintf("<AskNovaTags>\n1. Processing: Analyzing your request\n</AskNovaTags>\n<code>\n%s\n</code>", response)
}

// DefaultTrainingData composes the training-data reference for the
// top-ranked dataset suggestion.
func DefaultTrainingData(title, url string) string {
	return fmt.Sprintf("Dataset: %s\nURL: %s", title, url)
}
