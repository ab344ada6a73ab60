package inbound

import (
	"context"
	"generate-tutorial-api/domain"
)

type CreateTutorialParams struct {
	SourceURL string
	Style     domain.Style
}

// TutorialCreatorPort turns a source URL into a new session with a populated
// storyboard and an empty frame list.
type TutorialCreatorPort interface {
	Create(ctx context.Context, params CreateTutorialParams) (*domain.Session, error)
}
