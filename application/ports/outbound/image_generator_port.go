package outbound

import "context"

// ImageGeneratorPort renders one image from a visual description. Failures
// wrap domain.ErrRateLimited when the provider reports quota exhaustion.
type ImageGeneratorPort interface {
	Generate(ctx context.Context, description string) ([]byte, error)
}
