package services

import (
	"context"
	"generate-tutorial-api/application/ports/outbound"
	"sync"
)

type fakeTextGenerator struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []outbound.GenerateTextRequest
}

func (f *fakeTextGenerator) Generate(_ context.Context, req outbound.GenerateTextRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSourceFetcher struct {
	text    string
	err     error
	lastURL string
}

func (f *fakeSourceFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.lastURL = url
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeImageGenerator answers via a script keyed on prompt and attempt
// number, so tests can fail a specific step a specific number of times.
type fakeImageGenerator struct {
	mu       sync.Mutex
	respond  func(prompt string, attempt int) ([]byte, error)
	attempts map[string]int
}

func newFakeImageGenerator(respond func(prompt string, attempt int) ([]byte, error)) *fakeImageGenerator {
	return &fakeImageGenerator{respond: respond, attempts: make(map[string]int)}
}

func (f *fakeImageGenerator) Generate(_ context.Context, description string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[description]++
	return f.respond(description, f.attempts[description])
}

type fakeAudioGenerator struct {
	mu       sync.Mutex
	respond  func(text string, attempt int) ([]byte, error)
	attempts map[string]int
}

func newFakeAudioGenerator(respond func(text string, attempt int) ([]byte, error)) *fakeAudioGenerator {
	return &fakeAudioGenerator{respond: respond, attempts: make(map[string]int)}
}

func (f *fakeAudioGenerator) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts[text]++
	return f.respond(text, f.attempts[text])
}

type fakeMediaStore struct {
	mu     sync.Mutex
	puts   map[string][]byte
	putErr error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{puts: make(map[string][]byte)}
}

func (f *fakeMediaStore) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts[key] = body
	return "https://media.test/" + key, nil
}

func alwaysSucceed(_ string, _ int) ([]byte, error) {
	return []byte("artifact"), nil
}
