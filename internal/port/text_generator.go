package port

import "context"

// TextGenerator sends a prompt to an external text-generation backend and
// returns its free-form answer.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
