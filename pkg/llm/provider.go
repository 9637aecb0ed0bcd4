package llm

import "context"

// FragmentFunc receives one streamed text fragment. Returning an error stops
// the stream and propagates out of GenerateStream.
type FragmentFunc func(fragment string) error

// Provider defines the contract for the generation backend. Both single-shot
// calls (classification, keyword extraction) and streaming generation run
// through the same provider.
type Provider interface {
	// Generate sends a single prompt and returns the full response text.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateStream sends a prompt and delivers fragments in arrival order
	// through onFragment, returning the concatenated full text.
	GenerateStream(ctx context.Context, prompt string, onFragment FragmentFunc) (string, error)
}
