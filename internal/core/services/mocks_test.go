package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// fakeStrategy serves canned entities under a fixed name.
type fakeStrategy struct {
	name     string
	entities []driven.RawEntity
	err      error
	delay    func(ctx context.Context) // optional blocking hook
}

func (s *fakeStrategy) Name() string { return s.name }

func (s *fakeStrategy) Search(ctx context.Context, _ string, _ int) ([]driven.RawEntity, error) {
	if s.delay != nil {
		s.delay(ctx)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.entities, nil
}

// fakeEntityClient serves canned messages for metrics collection.
type fakeEntityClient struct {
	messages []driven.RawMessage
	err      error

	mu    sync.Mutex
	calls []string
}

func (c *fakeEntityClient) RecentMessages(_ context.Context, identity string, limit int) ([]driven.RawMessage, error) {
	c.mu.Lock()
	c.calls = append(c.calls, identity)
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if len(c.messages) > limit {
		return c.messages[:limit], nil
	}
	return c.messages, nil
}

func (c *fakeEntityClient) SearchEntities(context.Context, string, int) ([]driven.RawEntity, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeEntityClient) SearchContacts(context.Context, string, int) ([]driven.RawEntity, error) {
	return nil, errors.New("not implemented")
}

func (c *fakeEntityClient) SearchMessages(context.Context, string, int) (driven.MessageSearchResult, error) {
	return driven.MessageSearchResult{}, errors.New("not implemented")
}

func (c *fakeEntityClient) ResolveHandle(context.Context, string) (driven.RawEntity, error) {
	return driven.RawEntity{}, domain.ErrEntityNotFound
}

func (c *fakeEntityClient) Close() error { return nil }

// fakeLLM returns a fixed response or error for every Generate call.
type fakeLLM struct {
	response string
	err      error

	mu      sync.Mutex
	prompts []string
}

func (l *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	l.mu.Lock()
	l.prompts = append(l.prompts, prompt)
	l.mu.Unlock()
	if l.err != nil {
		return "", l.err
	}
	return l.response, nil
}

func (l *fakeLLM) ModelName() string { return "fake-model" }

func (l *fakeLLM) Ping(context.Context) error { return l.err }

func (l *fakeLLM) Close() error { return nil }

func (l *fakeLLM) lastPrompt() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.prompts) == 0 {
		return ""
	}
	return l.prompts[len(l.prompts)-1]
}

// fakePromptStore serves one in-memory template.
type fakePromptStore struct {
	template string
	err      error
}

func (p *fakePromptStore) Load(string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.template, nil
}

func (p *fakePromptStore) Reload() {}

func (p *fakePromptStore) Dir() string { return "" }

// fakeResultStore records persisted candidates and history in memory.
type fakeResultStore struct {
	mu         sync.Mutex
	saved      map[string][]domain.SearchCandidate
	history    []driven.SearchRecord
	byCategory map[string][]domain.SearchCandidate
	saveErr    error
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{
		saved:      make(map[string][]domain.SearchCandidate),
		byCategory: make(map[string][]domain.SearchCandidate),
	}
}

func (s *fakeResultStore) SaveCandidates(_ context.Context, query string, candidates []domain.SearchCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[query] = candidates
	return nil
}

func (s *fakeResultStore) SaveSearch(_ context.Context, rec driven.SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.history = append(s.history, rec)
	return nil
}

func (s *fakeResultStore) CandidatesByCategory(_ context.Context, category string, _, _ int) ([]domain.SearchCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byCategory[category], nil
}

func (s *fakeResultStore) CandidateByIdentity(context.Context, string) (domain.SearchCandidate, error) {
	return domain.SearchCandidate{}, domain.ErrEntityNotFound
}

func (s *fakeResultStore) PopularQueries(context.Context, time.Time, int) ([]driven.PopularQuery, error) {
	return nil, nil
}

func (s *fakeResultStore) Close() error { return nil }
