package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

func TestHistoryCmd_Empty(t *testing.T) {
	cleanup := setupTestServices(&mockDiscoveryService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "No searches recorded yet.")
}

func TestHistoryCmd_RanksQueries(t *testing.T) {
	cleanup := setupTestServices(&mockDiscoveryService{})
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	for i, q := range []string{"crypto", "crypto", "games"} {
		require.NoError(t, resultStore.SaveSearch(ctx, driven.SearchRecord{
			ID: string(rune('a' + i)), Query: q, ResultCount: 5, At: now,
		}))
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "crypto (2)")
	assert.Contains(t, out, "games (1)")
}
