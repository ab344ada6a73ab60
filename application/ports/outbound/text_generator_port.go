package outbound

import "context"

type GenerateTextRequest struct {
	SystemInstruction string
	UserContent       string
}

// TextGeneratorPort is a single-turn text generation capability. No
// conversation state is retained between calls.
type TextGeneratorPort interface {
	Generate(ctx context.Context, req GenerateTextRequest) (string, error)
}
