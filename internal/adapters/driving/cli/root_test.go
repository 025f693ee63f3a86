package cli

import (
	"context"

	"github.com/chanscout/chanscout-cli/internal/adapters/driven/storage/memory"
	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driving"
)

// Ensure the mock satisfies the interface.
var _ driving.DiscoveryService = (*mockDiscoveryService)(nil)

// mockDiscoveryService records calls and serves canned results.
type mockDiscoveryService struct {
	results   []domain.EnrichedCandidate
	err       error
	lastQuery string
	lastOpts  domain.DiscoverOptions
	cleared   bool
}

func (m *mockDiscoveryService) Discover(
	_ context.Context, query string, opts domain.DiscoverOptions,
) ([]domain.EnrichedCandidate, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockDiscoveryService) ClearCaches() {
	m.cleared = true
}

// setupTestServices injects mock services and returns a cleanup func.
func setupTestServices(mock *mockDiscoveryService) func() {
	prevDiscovery := discoveryService
	prevStore := resultStore
	discoveryService = mock
	resultStore = memory.NewResultStore()
	return func() {
		discoveryService = prevDiscovery
		resultStore = prevStore
	}
}
