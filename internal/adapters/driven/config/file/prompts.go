package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves LLM prompt templates from user-editable files,
// falling back to the embedded defaults. The constructor does no I/O;
// the prompt directory and default files materialize on first Load, so
// tests and read-only commands never touch the home directory.
type PromptStore struct {
	mu      sync.RWMutex
	dir     string
	cache   map[string]string
	setup   sync.Once
	failure error
}

// defaultPrompts holds the embedded templates, keyed by prompt name.
// They seed the on-disk files and back them up when a file is missing
// or unreadable.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAssessment: `Analyze this public messaging community and rate its quality.

COMMUNITY:
%s
ACTIVITY METRICS:
%s
RECENT POSTS:
%s
Return ONLY a JSON object, no surrounding text:

{
  "qualityScore": number 0-10,
  "verdict": "short verdict (useful/spam/advertising/educational/news)",
  "categories": ["content categories"],
  "commercialIndex": number 0-10,
  "educationalValue": number 0-10,
  "contentType": "original/reposts/mixed",
  "targetAudience": "who the content is for",
  "warnings": ["concerns, if any"],
  "recommendation": "subscribe or skip, one sentence"
}`,
}

// NewPromptStore creates a prompt store rooted at promptDir, defaulting
// to ~/.chanscout/prompts when empty.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".chanscout", "prompts")
	}
	return &PromptStore{
		dir:   promptDir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the template for name: cached copy first, then the
// user's file, then the embedded default. An unknown name with no file
// is an error.
func (s *PromptStore) Load(name string) (string, error) {
	s.setup.Do(s.materialize)
	if s.failure != nil {
		if template, ok := defaultPrompts[name]; ok {
			return template, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.failure)
	}

	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name+".txt"))
	if err != nil {
		if template, ok := defaultPrompts[name]; ok {
			return template, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}
	template := strings.TrimSpace(string(data))

	// Concurrent loaders may race here; first write wins so every
	// caller sees one consistent template until the next Reload.
	s.mu.Lock()
	if existing, ok := s.cache[name]; ok {
		template = existing
	} else {
		s.cache[name] = template
	}
	s.mu.Unlock()

	return template, nil
}

// Reload drops the cache so edited files are re-read on next Load.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.dir
}

// materialize creates the prompt directory, seeds missing default
// files and drops in a README. Runs once, on first Load.
func (s *PromptStore) materialize() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.failure = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.dir, name+".txt")
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			s.failure = fmt.Errorf("seed default prompt %q: %w", name, err)
			return
		}
	}

	s.failure = s.writeReadme()
}

// writeReadme documents the directory for users who find it by hand.
func (s *PromptStore) writeReadme() error {
	path := filepath.Join(s.dir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Chanscout Prompts

This directory contains customisable prompts used by chanscout's AI features.

## Files

- ` + "`assessment.txt`" + ` - Rates the quality of a discovered community

## Customisation

Edit any file to customise AI behaviour. Changes take effect on the next
command. The assessment template must keep its three %s placeholders
(community block, metrics block, posts block) and must keep asking for
the JSON object shape, or responses will fall back to "undetermined".

To restore a default, delete the file and run any enriching discovery.
`

	return os.WriteFile(path, []byte(content), 0600)
}
