package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// PipelineConfig tunes the per-step retry and pacing behavior of the media
// stages. All values have defaults so the service starts without any of the
// variables set.
type PipelineConfig struct {
	MaxAttempts    int
	RetryDelay     time.Duration
	InterStepDelay time.Duration
	// OverwriteStepText resyncs each frame's text from the storyboard on
	// every stage pass, matching the reference behavior. Set
	// PIPELINE_PRESERVE_TEXT=true to keep text written by a later stage or a
	// rephrase instead.
	OverwriteStepText bool
}

func GetPipelineConfig() (*PipelineConfig, error) {
	cfg := &PipelineConfig{
		MaxAttempts:       3,
		RetryDelay:        2 * time.Second,
		InterStepDelay:    time.Second,
		OverwriteStepText: true,
	}

	if v := os.Getenv("PIPELINE_MAX_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts < 1 {
			return nil, fmt.Errorf("invalid PIPELINE_MAX_ATTEMPTS: %q", v)
		}
		cfg.MaxAttempts = attempts
	}
	if v := os.Getenv("PIPELINE_RETRY_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid PIPELINE_RETRY_DELAY_MS: %q", v)
		}
		cfg.RetryDelay = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("PIPELINE_STEP_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid PIPELINE_STEP_DELAY_MS: %q", v)
		}
		cfg.InterStepDelay = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("PIPELINE_PRESERVE_TEXT"); v != "" {
		preserve, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PIPELINE_PRESERVE_TEXT: %q", v)
		}
		cfg.OverwriteStepText = !preserve
	}

	return cfg, nil
}
