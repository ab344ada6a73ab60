package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/config"
	"net/http"
)

type chatGptRequest struct {
	Model    string           `json:"model"`
	Messages []chatGptMessage `json:"messages"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type gptTextGenerator struct {
	ContentFetcher
	logger    outbound.LoggerPort
	gptConfig *config.GptConfig
}

func NewGptTextGenerator(contentFetcher ContentFetcher, gptConfig *config.GptConfig, logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &gptTextGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		gptConfig:      gptConfig,
	}
}

func (g *gptTextGenerator) Generate(ctx context.Context, genReq outbound.GenerateTextRequest) (string, error) {
	req, err := g.getRequest(ctx, genReq)
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request for text generation")
		return "", err
	}

	rawRes, err := g.FetchContent(req)
	if err != nil {
		g.logger.Error(err, "Failed to fetch the text generation response")
		return "", err
	}

	var gptRes chatGptResponse
	if err := json.Unmarshal(rawRes, &gptRes); err != nil {
		g.logger.Error(err, "Failed to unmarshal the text generation response")
		return "", err
	}
	if len(gptRes.Choices) == 0 {
		return "", fmt.Errorf("text generation response contained no choices")
	}

	return gptRes.Choices[0].Message.Content, nil
}

func (g *gptTextGenerator) getRequest(ctx context.Context, genReq outbound.GenerateTextRequest) (*http.Request, error) {
	promptReq := chatGptRequest{
		Model: g.gptConfig.Model,
		Messages: []chatGptMessage{
			{Role: "system", Content: genReq.SystemInstruction},
			{Role: "user", Content: genReq.UserContent},
		},
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+g.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
