package dto

import "generate-tutorial-api/domain"

type CreateTutorialRequest struct {
	URL   string `json:"url" binding:"required"`
	Style string `json:"style"`
}

type CreateTutorialResponse struct {
	ID    string `json:"id"`
	Steps int    `json:"steps"`
}

type StageResponse struct {
	Succeeded   int  `json:"succeeded"`
	Total       int  `json:"total"`
	RateLimited bool `json:"rateLimited"`
}

type RephraseResponse struct {
	Index int          `json:"index"`
	Frame domain.Frame `json:"frame"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
