package outbound

import "generate-tutorial-api/domain"

// SessionStorePort is the only shared mutable state between pipeline stages,
// rephrase requests and readers. Get returns a snapshot; UpdateFrame is an
// atomic field-level merge per (session, index), so concurrent writers of
// disjoint fields never lose an update.
type SessionStorePort interface {
	Create(id string, session *domain.Session) error
	Get(id string) (*domain.Session, error)
	UpdateFrame(id string, index int, patch domain.FramePatch) error
}
