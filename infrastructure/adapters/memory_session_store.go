package adapters

import (
	"fmt"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/domain"
	"sync"
)

// memorySessionStore keeps every session resident for the life of the
// process. There is no eviction; the registry only grows. Create fails on a
// duplicate id rather than overwriting.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewMemorySessionStore() outbound.SessionStorePort {
	return &memorySessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

func (m *memorySessionStore) Create(id string, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return fmt.Errorf("create %q: %w", id, domain.ErrSessionExists)
	}
	m.sessions[id] = session
	return nil
}

func (m *memorySessionStore) Get(id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", id, domain.ErrSessionNotFound)
	}
	// Snapshot so readers can walk frames while a stage keeps writing.
	return session.Clone(), nil
}

func (m *memorySessionStore) UpdateFrame(id string, index int, patch domain.FramePatch) error {
	if index < 0 {
		return fmt.Errorf("update frame %d of %q: %w", index, id, domain.ErrFrameIndexOutOfRange)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("update frame %d of %q: %w", index, id, domain.ErrSessionNotFound)
	}

	for len(session.Frames) <= index {
		session.Frames = append(session.Frames, nil)
	}
	frame := session.Frames[index]
	if frame == nil {
		frame = &domain.Frame{}
		session.Frames[index] = frame
	}

	if patch.Text != "" {
		frame.Text = patch.Text
	}
	if patch.ImageURL != "" {
		frame.ImageURL = patch.ImageURL
	}
	if patch.AudioURL != "" {
		frame.AudioURL = patch.AudioURL
	}

	return nil
}
