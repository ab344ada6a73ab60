package services

import (
	"context"
	"encoding/json"
	"fmt"
	"generate-tutorial-api/application/ports/inbound"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/domain"
	"strings"

	"github.com/google/uuid"
)

type tutorialCreator struct {
	logger        outbound.LoggerPort
	textGenerator outbound.TextGeneratorPort
	sourceFetcher outbound.SourceFetcherPort
	sessionStore  outbound.SessionStorePort
}

func NewTutorialCreator(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort,
	sourceFetcher outbound.SourceFetcherPort, sessionStore outbound.SessionStorePort) inbound.TutorialCreatorPort {
	return &tutorialCreator{
		logger:        logger,
		textGenerator: textGenerator,
		sourceFetcher: sourceFetcher,
		sessionStore:  sessionStore,
	}
}

func (t *tutorialCreator) Create(ctx context.Context, params inbound.CreateTutorialParams) (*domain.Session, error) {
	style := params.Style
	if style == "" {
		style = domain.StyleDefault
	}

	sourceText, err := t.sourceFetcher.Fetch(ctx, params.SourceURL)
	if err != nil {
		t.logger.ErrorWithFields(err, "Failed to fetch source content", map[string]interface{}{
			"url": params.SourceURL,
		})
		return nil, err
	}

	reply, err := t.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		SystemInstruction: storyboardSystemInstruction(style),
		UserContent:       sourceText,
	})
	if err != nil {
		t.logger.Error(err, "Failed to generate the storyboard")
		return nil, err
	}

	steps, err := parseStoryboard(reply)
	if err != nil {
		t.logger.ErrorWithFields(err, "Failed to parse the storyboard reply", map[string]interface{}{
			"reply": reply,
		})
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		SourceURL: params.SourceURL,
		Style:     style,
		Steps:     steps,
		Frames:    []*domain.Frame{},
	}

	if err := t.sessionStore.Create(session.ID, session); err != nil {
		t.logger.Error(err, "Failed to register the new session")
		return nil, err
	}

	t.logger.InfoWithFields("Created tutorial session", map[string]interface{}{
		"id":    session.ID,
		"steps": len(steps),
	})

	return session, nil
}

// parseStoryboard reads the step map out of a free-form model reply. A reply
// that is not pure JSON is salvaged by parsing the outermost {...} span;
// anything less than one step is fatal for the request.
func parseStoryboard(reply string) (map[string]string, error) {
	var steps map[string]string
	if err := json.Unmarshal([]byte(reply), &steps); err != nil {
		start := strings.Index(reply, "{")
		end := strings.LastIndex(reply, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("reply %q: %w", truncateForLog(reply), domain.ErrNoStoryboardJSON)
		}
		if err := json.Unmarshal([]byte(reply[start:end+1]), &steps); err != nil {
			return nil, fmt.Errorf("reply %q: %w", truncateForLog(reply), domain.ErrNoStoryboardJSON)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("storyboard has zero steps: %w", domain.ErrNoStoryboardJSON)
	}
	return steps, nil
}

func truncateForLog(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
