package outbound

import "context"

// SourceFetcherPort resolves a source URL into plain text: the visible body
// text of a web page, or the README of a code repository.
type SourceFetcherPort interface {
	Fetch(ctx context.Context, url string) (string, error)
}
