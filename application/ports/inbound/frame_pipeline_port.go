package inbound

import (
	"context"
	"generate-tutorial-api/domain"
)

// StageConfig parameterizes one media pass over a session: which capability
// to call, how to turn step text into a request payload, and how to name the
// stored artifact. The image and audio stages are the two instantiations.
type StageConfig struct {
	Name        string
	FileExt     string
	ContentType string
	BuildPrompt func(stepText string) string
	Generate    func(ctx context.Context, prompt string) ([]byte, error)
	// Patch places the stored artifact URL into the stage's frame field.
	Patch func(url string) domain.FramePatch
	// OverwriteText controls whether each pass resyncs the frame text from
	// the storyboard even when a later writer already replaced it.
	OverwriteText bool
}

// FramePipelinePort walks every step of a session in sorted key order and
// attempts to produce one artifact per step, writing progress continuously.
type FramePipelinePort interface {
	Run(ctx context.Context, sessionID string, stage StageConfig) (domain.StageSummary, error)
}
