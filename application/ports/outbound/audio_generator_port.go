package outbound

import "context"

// AudioGeneratorPort synthesizes narration audio for the given text.
type AudioGeneratorPort interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
