package config

import (
	"fmt"
	"os"
	"strconv"
)

// SourceConfig bounds the text handed to the storyboard prompt. Source text
// longer than CharBudget is truncated, never chunked; shorter than MinChars
// the whole request is rejected. RawContentBaseURL is where repository
// READMEs are fetched from.
type SourceConfig struct {
	CharBudget        int
	MinChars          int
	RawContentBaseURL string
}

func GetSourceConfig() (*SourceConfig, error) {
	cfg := &SourceConfig{
		CharBudget:        12000,
		MinChars:          200,
		RawContentBaseURL: "https://raw.githubusercontent.com",
	}

	if v := os.Getenv("SOURCE_RAW_CONTENT_URL"); v != "" {
		cfg.RawContentBaseURL = v
	}

	if v := os.Getenv("SOURCE_CHAR_BUDGET"); v != "" {
		budget, err := strconv.Atoi(v)
		if err != nil || budget < 1 {
			return nil, fmt.Errorf("invalid SOURCE_CHAR_BUDGET: %q", v)
		}
		cfg.CharBudget = budget
	}
	if v := os.Getenv("SOURCE_MIN_CHARS"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil || min < 0 {
			return nil, fmt.Errorf("invalid SOURCE_MIN_CHARS: %q", v)
		}
		cfg.MinChars = min
	}

	return cfg, nil
}
