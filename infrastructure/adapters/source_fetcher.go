package adapters

import (
	"context"
	"fmt"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/config"
	"generate-tutorial-api/domain"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

const readmePlaceholder = "This repository has no README. Explain what a typical software project with this name might do."

type sourceFetcher struct {
	ContentFetcher
	logger       outbound.LoggerPort
	sourceConfig *config.SourceConfig
}

func NewSourceFetcher(contentFetcher ContentFetcher, sourceConfig *config.SourceConfig, logger outbound.LoggerPort) outbound.SourceFetcherPort {
	return &sourceFetcher{
		ContentFetcher: contentFetcher,
		logger:         logger,
		sourceConfig:   sourceConfig,
	}
}

func (s *sourceFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid source url %q", rawURL)
	}

	var text string
	if owner, repo, ok := splitRepoPath(parsed); ok {
		readme, found := s.fetchReadme(ctx, owner, repo)
		if !found {
			// The canned placeholder stands in for a missing README and is
			// exempt from the minimum-length check below.
			return readmePlaceholder, nil
		}
		text = readme
	} else {
		text, err = s.fetchPageText(ctx, rawURL)
		if err != nil {
			return "", err
		}
	}

	text = strings.TrimSpace(text)
	if len(text) < s.sourceConfig.MinChars {
		return "", fmt.Errorf("source %q yielded %d chars: %w", rawURL, len(text), domain.ErrSourceTooShort)
	}
	if len(text) > s.sourceConfig.CharBudget {
		text = text[:s.sourceConfig.CharBudget]
	}

	return text, nil
}

// splitRepoPath recognizes github.com/{owner}/{repo} URLs.
func splitRepoPath(u *url.URL) (owner, repo string, ok bool) {
	if !strings.EqualFold(u.Host, "github.com") {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

func (s *sourceFetcher) fetchReadme(ctx context.Context, owner, repo string) (string, bool) {
	for _, branch := range []string{"main", "master"} {
		rawURL := fmt.Sprintf("%s/%s/%s/%s/README.md", s.sourceConfig.RawContentBaseURL, owner, repo, branch)
		req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
		if err != nil {
			continue
		}
		payload, err := s.FetchContent(req)
		if err != nil {
			s.logger.DebugWithFields("README not found on branch", map[string]interface{}{
				"repo":   owner + "/" + repo,
				"branch": branch,
			})
			continue
		}
		return string(payload), true
	}
	return "", false
}

func (s *sourceFetcher) fetchPageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	payload, err := s.FetchContent(req)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(string(payload)))
	if err != nil {
		s.logger.Error(err, "Failed to parse the page HTML")
		return "", err
	}

	var b strings.Builder
	collectVisibleText(doc, &b)
	return b.String(), nil
}

// collectVisibleText walks the DOM and appends the text a reader would see,
// skipping script, style and head subtrees.
func collectVisibleText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "head", "iframe", "svg":
			return
		}
	}
	if n.Type == html.TextNode {
		trimmed := strings.TrimSpace(n.Data)
		if trimmed != "" {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(trimmed)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectVisibleText(child, b)
	}
}
