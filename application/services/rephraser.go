package services

import (
	"context"
	"fmt"
	"generate-tutorial-api/application/ports/inbound"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/domain"
	"strings"
)

type rephraser struct {
	logger         outbound.LoggerPort
	textGenerator  outbound.TextGeneratorPort
	audioGenerator outbound.AudioGeneratorPort
	mediaStore     outbound.MediaStorePort
	sessionStore   outbound.SessionStorePort
}

func NewRephraser(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort,
	audioGenerator outbound.AudioGeneratorPort, mediaStore outbound.MediaStorePort,
	sessionStore outbound.SessionStorePort) inbound.RephraserPort {
	return &rephraser{
		logger:         logger,
		textGenerator:  textGenerator,
		audioGenerator: audioGenerator,
		mediaStore:     mediaStore,
		sessionStore:   sessionStore,
	}
}

// Rephrase regenerates narration and audio for one frame. All external calls
// happen before the single UpdateFrame at the end, so a failure anywhere
// leaves the frame exactly as it was. The image is never regenerated; the
// narration and voice are what a confused viewer asks to redo.
func (r *rephraser) Rephrase(ctx context.Context, sessionID string, frameIndex int) (*domain.Frame, error) {
	session, err := r.sessionStore.Get(sessionID)
	if err != nil {
		return nil, err
	}

	keys := session.StepKeys()
	if frameIndex < 0 || frameIndex >= len(keys) {
		return nil, fmt.Errorf("index %d of %d steps: %w", frameIndex, len(keys), domain.ErrFrameIndexOutOfRange)
	}

	currentText := session.Steps[keys[frameIndex]]
	if frameIndex < len(session.Frames) && session.Frames[frameIndex] != nil && session.Frames[frameIndex].Text != "" {
		currentText = session.Frames[frameIndex].Text
	}

	newText, err := r.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		SystemInstruction: rephraseSystemInstruction(session.Style),
		UserContent:       currentText,
	})
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to rephrase the narration", map[string]interface{}{
			"session": sessionID,
			"index":   frameIndex,
		})
		return nil, err
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, fmt.Errorf("rephrase produced empty narration for frame %d", frameIndex)
	}

	audio, err := r.audioGenerator.Synthesize(ctx, newText)
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to synthesize the rephrased narration", map[string]interface{}{
			"session": sessionID,
			"index":   frameIndex,
		})
		return nil, err
	}

	objectKey := fmt.Sprintf("%s/frame%d.mp3", sessionID, frameIndex+1)
	audioURL, err := r.mediaStore.Put(ctx, objectKey, audio, "audio/mpeg")
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to store the rephrased audio", map[string]interface{}{
			"session": sessionID,
			"key":     objectKey,
		})
		return nil, err
	}

	if err := r.sessionStore.UpdateFrame(sessionID, frameIndex, domain.FramePatch{
		Text:     newText,
		AudioURL: audioURL,
	}); err != nil {
		return nil, err
	}

	updated, err := r.sessionStore.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return updated.Frames[frameIndex], nil
}
