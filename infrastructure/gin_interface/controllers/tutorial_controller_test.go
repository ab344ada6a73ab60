package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"generate-tutorial-api/application/ports/inbound"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/domain"
	"generate-tutorial-api/infrastructure/adapters"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeCreator struct {
	session *domain.Session
	err     error
}

func (f *fakeCreator) Create(_ context.Context, _ inbound.CreateTutorialParams) (*domain.Session, error) {
	return f.session, f.err
}

type fakePipeline struct {
	mu      sync.Mutex
	summary domain.StageSummary
	err     error
	runs    []string
}

func (f *fakePipeline) Run(_ context.Context, sessionID string, stage inbound.StageConfig) (domain.StageSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, stage.Name+":"+sessionID)
	return f.summary, f.err
}

type fakeRephraser struct {
	frame *domain.Frame
	err   error
}

func (f *fakeRephraser) Rephrase(_ context.Context, _ string, _ int) (*domain.Frame, error) {
	return f.frame, f.err
}

// inlineDispatcher runs submitted tasks synchronously so tests can assert on
// the background stage runs without sleeping.
type inlineDispatcher struct{}

func (inlineDispatcher) Submit(task func()) error {
	task()
	return nil
}

func newTestRouter(creator *fakeCreator, pipeline *fakePipeline, rephraser *fakeRephraser) (*gin.Engine, outbound.SessionStorePort) {
	gin.SetMode(gin.TestMode)
	logger := adapters.NewZerologWrapper()
	store := adapters.NewMemorySessionStore()

	imageStage := inbound.StageConfig{Name: "image"}
	audioStage := inbound.StageConfig{Name: "audio"}

	controller := NewTutorialController(logger, inlineDispatcher{}, creator, pipeline, rephraser,
		store, imageStage, audioStage)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	controller.RegisterRoutes(router)
	return router, store
}

func TestTutorialController_CreateRunsBothStages(t *testing.T) {
	session := &domain.Session{
		ID:    "sess-1",
		Steps: map[string]string{"step1": "a", "step2": "b"},
	}
	pipeline := &fakePipeline{summary: domain.StageSummary{Succeeded: 2, Total: 2}}
	router, _ := newTestRouter(&fakeCreator{session: session}, pipeline, &fakeRephraser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tutorials", strings.NewReader(`{"url": "https://example.com", "style": "pizza"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID    string `json:"id"`
		Steps int    `json:"steps"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "sess-1" || resp.Steps != 2 {
		t.Errorf("response = %+v", resp)
	}

	want := []string{"image:sess-1", "audio:sess-1"}
	if len(pipeline.runs) != 2 || pipeline.runs[0] != want[0] || pipeline.runs[1] != want[1] {
		t.Errorf("stage runs = %v, want %v", pipeline.runs, want)
	}
}

func TestTutorialController_CreateValidation(t *testing.T) {
	router, _ := newTestRouter(&fakeCreator{}, &fakePipeline{}, &fakeRephraser{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing url", `{"style": "pizza"}`, http.StatusBadRequest},
		{"malformed json", `{"url": `, http.StatusBadRequest},
		{"unknown style", `{"url": "https://example.com", "style": "victorian"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/tutorials", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestTutorialController_CreateFailure(t *testing.T) {
	router, _ := newTestRouter(&fakeCreator{err: fmt.Errorf("storyboard generation failed")}, &fakePipeline{}, &fakeRephraser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tutorials", strings.NewReader(`{"url": "https://example.com"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestTutorialController_GetTutorial(t *testing.T) {
	router, store := newTestRouter(&fakeCreator{}, &fakePipeline{}, &fakeRephraser{})
	_ = store.Create("sess-1", &domain.Session{
		ID:     "sess-1",
		Steps:  map[string]string{"step1": "a"},
		Frames: []*domain.Frame{{Text: "a", ImageURL: "https://img"}},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/tutorials/sess-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var session domain.Session
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatal(err)
	}
	if session.ID != "sess-1" || session.Frames[0].ImageURL != "https://img" {
		t.Errorf("session = %+v", session)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/tutorials/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want 404", w.Code)
	}
}

func TestTutorialController_RunStageStatusCodes(t *testing.T) {
	pipeline := &fakePipeline{err: fmt.Errorf("wrap: %w", domain.ErrSessionNotFound)}
	router, _ := newTestRouter(&fakeCreator{}, pipeline, &fakeRephraser{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/missing/images", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}

	pipeline.err = fmt.Errorf("wrap: %w", domain.ErrEmptyStoryboard)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/sess-1/audio", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestTutorialController_RunStageSummary(t *testing.T) {
	pipeline := &fakePipeline{summary: domain.StageSummary{Succeeded: 1, Total: 3, RateLimited: true}}
	router, _ := newTestRouter(&fakeCreator{}, pipeline, &fakeRephraser{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/sess-1/images", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp domain.StageSummary
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Succeeded != 1 || resp.Total != 3 || !resp.RateLimited {
		t.Errorf("summary = %+v", resp)
	}
}

func TestTutorialController_RephraseStatusCodes(t *testing.T) {
	rephraser := &fakeRephraser{frame: &domain.Frame{Text: "new", AudioURL: "https://audio"}}
	router, _ := newTestRouter(&fakeCreator{}, &fakePipeline{}, rephraser)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/sess-1/frames/0/rephrase", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/sess-1/frames/notanumber/rephrase", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-integer index: status = %d, want 400", w.Code)
	}

	rephraser.frame = nil
	rephraser.err = fmt.Errorf("wrap: %w", domain.ErrFrameIndexOutOfRange)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/sess-1/frames/99/rephrase", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range index: status = %d, want 400", w.Code)
	}

	rephraser.err = fmt.Errorf("wrap: %w", domain.ErrSessionNotFound)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/tutorials/missing/frames/0/rephrase", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want 404", w.Code)
	}
}

func TestTutorialController_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(&fakeCreator{}, &fakePipeline{}, &fakeRephraser{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/tutorials/sess-1", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
