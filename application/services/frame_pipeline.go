package services

import (
	"context"
	"errors"
	"fmt"
	"generate-tutorial-api/application/ports/inbound"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/config"
	"generate-tutorial-api/domain"
	"time"
)

type framePipeline struct {
	logger       outbound.LoggerPort
	sessionStore outbound.SessionStorePort
	mediaStore   outbound.MediaStorePort
	cfg          *config.PipelineConfig
}

func NewFramePipeline(logger outbound.LoggerPort, sessionStore outbound.SessionStorePort,
	mediaStore outbound.MediaStorePort, cfg *config.PipelineConfig) inbound.FramePipelinePort {
	return &framePipeline{
		logger:       logger,
		sessionStore: sessionStore,
		mediaStore:   mediaStore,
		cfg:          cfg,
	}
}

// Run visits every step of the session in sorted key order and tries to
// produce one artifact per step. A failed step is skipped, never aborting
// the rest; a rate-limited step abandons the remaining steps of this pass
// entirely. Only an unknown session or an empty storyboard is an error.
func (p *framePipeline) Run(ctx context.Context, sessionID string, stage inbound.StageConfig) (domain.StageSummary, error) {
	session, err := p.sessionStore.Get(sessionID)
	if err != nil {
		return domain.StageSummary{}, err
	}

	keys := session.StepKeys()
	if len(keys) == 0 {
		return domain.StageSummary{}, fmt.Errorf("session %q: %w", sessionID, domain.ErrEmptyStoryboard)
	}

	summary := domain.StageSummary{Total: len(keys)}

	for i, key := range keys {
		stepText := session.Steps[key]

		if err := p.ensureFrame(session, sessionID, i, stepText); err != nil {
			p.logger.ErrorWithFields(err, "Failed to pre-initialize frame", map[string]interface{}{
				"session": sessionID,
				"index":   i,
			})
			continue
		}

		artifact, err := p.generateWithRetry(ctx, stage, stepText)
		if errors.Is(err, domain.ErrRateLimited) {
			p.logger.WarnWithFields("Rate limited, abandoning remaining steps of this stage", map[string]interface{}{
				"session": sessionID,
				"stage":   stage.Name,
				"step":    key,
			})
			summary.RateLimited = true
			return summary, nil
		}
		if err != nil {
			p.logger.ErrorWithFields(err, "Step generation failed after retries, skipping", map[string]interface{}{
				"session": sessionID,
				"stage":   stage.Name,
				"step":    key,
			})
			continue
		}

		objectKey := fmt.Sprintf("%s/frame%d.%s", sessionID, i+1, stage.FileExt)
		url, err := p.mediaStore.Put(ctx, objectKey, artifact, stage.ContentType)
		if err != nil {
			p.logger.ErrorWithFields(err, "Failed to store artifact, skipping step", map[string]interface{}{
				"session": sessionID,
				"stage":   stage.Name,
				"key":     objectKey,
			})
			continue
		}

		patch := stage.Patch(url)
		if stage.OverwriteText {
			patch.Text = stepText
		}
		if err := p.sessionStore.UpdateFrame(sessionID, i, patch); err != nil {
			p.logger.ErrorWithFields(err, "Failed to record artifact URL", map[string]interface{}{
				"session": sessionID,
				"index":   i,
			})
			continue
		}

		summary.Succeeded++
		if i < len(keys)-1 && p.cfg.InterStepDelay > 0 {
			time.Sleep(p.cfg.InterStepDelay)
		}
	}

	p.logger.InfoWithFields("Stage finished", map[string]interface{}{
		"session":   sessionID,
		"stage":     stage.Name,
		"succeeded": summary.Succeeded,
		"total":     summary.Total,
	})

	return summary, nil
}

// ensureFrame guarantees the slot holds at least the storyboard text before
// generation starts, so a polling viewer never sees a hole mid-stage.
func (p *framePipeline) ensureFrame(session *domain.Session, sessionID string, index int, stepText string) error {
	if p.cfg.OverwriteStepText || index >= len(session.Frames) || session.Frames[index] == nil {
		return p.sessionStore.UpdateFrame(sessionID, index, domain.FramePatch{Text: stepText})
	}
	return nil
}

func (p *framePipeline) generateWithRetry(ctx context.Context, stage inbound.StageConfig, stepText string) ([]byte, error) {
	prompt := stage.BuildPrompt(stepText)

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		artifact, err := stage.Generate(ctx, prompt)
		if err == nil {
			return artifact, nil
		}
		if errors.Is(err, domain.ErrRateLimited) {
			return nil, err
		}
		lastErr = err
		p.logger.WarnWithFields("Generation attempt failed", map[string]interface{}{
			"stage":   stage.Name,
			"attempt": attempt,
		})
		if attempt < p.cfg.MaxAttempts && p.cfg.RetryDelay > 0 {
			time.Sleep(p.cfg.RetryDelay)
		}
	}
	return nil, lastErr
}

// ImageStage configures a pipeline pass that illustrates every step. The
// drawable prompt comes from the heuristic extractor, not the raw narration.
func ImageStage(generator outbound.ImageGeneratorPort, extractor *VisualPromptExtractor, overwriteText bool) inbound.StageConfig {
	return inbound.StageConfig{
		Name:        "image",
		FileExt:     "png",
		ContentType: "image/png",
		BuildPrompt: extractor.Extract,
		Generate:    generator.Generate,
		Patch: func(url string) domain.FramePatch {
			return domain.FramePatch{ImageURL: url}
		},
		OverwriteText: overwriteText,
	}
}

// AudioStage configures a pipeline pass that voices every step. The literal
// narration text is the synthesis input.
func AudioStage(generator outbound.AudioGeneratorPort, overwriteText bool) inbound.StageConfig {
	return inbound.StageConfig{
		Name:        "audio",
		FileExt:     "mp3",
		ContentType: "audio/mpeg",
		BuildPrompt: func(stepText string) string { return stepText },
		Generate:    generator.Synthesize,
		Patch: func(url string) domain.FramePatch {
			return domain.FramePatch{AudioURL: url}
		},
		OverwriteText: overwriteText,
	}
}
