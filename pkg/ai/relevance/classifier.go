// Package relevance gates turns on whether the prompt is an ML task at all.
package relevance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asknova-be/internal/constant"
	"asknova-be/pkg/llm"
)

// ErrUnparsable means the model answered with something other than yes/no.
// Callers must treat this as an upstream failure, never as "not relevant";
// a transient model hiccup is not a content judgement.
var ErrUnparsable = errors.New("classifier returned unparseable verdict")

type Classifier struct {
	provider llm.Provider
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// IsMLPrompt asks the model whether the prompt is about ML/DL model creation.
func (c *Classifier) IsMLPrompt(ctx context.Context, prompt string) (bool, error) {
	raw, err := c.provider.Generate(ctx, fmt.Sprintf(constant.RelevancePromptTemplate, prompt))
	if err != nil {
		return false, err
	}
	return ParseVerdict(raw)
}

// ParseVerdict normalizes the model's free-text verdict. Only an exact
// yes/no survives normalization; everything else fails closed.
func ParseVerdict(raw string) (bool, error) {
	verdict := strings.ToLower(strings.TrimSpace(raw))
	verdict = strings.Trim(verdict, `"'.`)
	switch verdict {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnparsable, raw)
	}
}
