package config

import (
	"fmt"
	"os"
)

const defaultGptApiUrl = "https://api.openai.com/v1/chat/completions"

type GptConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

// GetGptConfig reads the chat-completions settings. GPT_API_URL is optional
// and falls back to the OpenAI endpoint; the key and model are required.
func GetGptConfig() (*GptConfig, error) {
	cfg := &GptConfig{
		ApiUrl: defaultGptApiUrl,
		ApiKey: os.Getenv("GPT_API_KEY"),
		Model:  os.Getenv("GPT_MODEL"),
	}
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("GPT_API_KEY is not set")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("GPT_MODEL is not set")
	}
	if v := os.Getenv("GPT_API_URL"); v != "" {
		cfg.ApiUrl = v
	}
	return cfg, nil
}
