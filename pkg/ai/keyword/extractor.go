// Package keyword extracts the dataset-search keywords from a user prompt.
package keyword

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asknova-be/internal/constant"
	"asknova-be/pkg/llm"
)

// ErrUnparsable means the model did not return the expected comma-separated
// keyword pair.
var ErrUnparsable = errors.New("extractor returned unparseable keywords")

// Keywords holds the extracted pair. Domain drives the dataset search;
// TaskType is informational.
type Keywords struct {
	Domain   string
	TaskType string
}

type Extractor struct {
	provider llm.Provider
}

func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

func (e *Extractor) Extract(ctx context.Context, prompt string) (Keywords, error) {
	raw, err := e.provider.Generate(ctx, fmt.Sprintf(constant.KeywordPromptTemplate, prompt))
	if err != nil {
		return Keywords{}, err
	}
	return ParseKeywords(raw)
}

// ParseKeywords splits the model output into lowercase domain and task-type
// keywords. An empty domain keyword fails closed.
func ParseKeywords(raw string) (Keywords, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "`'\"")
	if cleaned == "" {
		return Keywords{}, fmt.Errorf("%w: empty output", ErrUnparsable)
	}

	parts := strings.Split(cleaned, ",")
	kw := Keywords{
		Domain: strings.ToLower(strings.TrimSpace(parts[0])),
	}
	if len(parts) > 1 {
		kw.TaskType = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if kw.Domain == "" {
		return Keywords{}, fmt.Errorf("%w: %q", ErrUnparsable, raw)
	}
	return kw, nil
}
