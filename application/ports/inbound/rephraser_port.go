package inbound

import (
	"context"
	"generate-tutorial-api/domain"
)

// RephraserPort regenerates the narration text and audio for exactly one
// frame of a live session. The frame's image is never touched.
type RephraserPort interface {
	Rephrase(ctx context.Context, sessionID string, frameIndex int) (*domain.Frame, error)
}
