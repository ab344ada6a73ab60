package outbound

import "context"

// MediaStorePort persists generated artifact bytes and returns a publicly
// readable URL. Keys are write-once by convention; a concurrent writer to
// the same key wins by last write.
type MediaStorePort interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
