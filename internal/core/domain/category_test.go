package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"english crypto", "Crypto Signals Daily", "", "crypto"},
		{"russian crypto", "Криптовалюты и блокчейн", "", "crypto"},
		{"news in description", "Daily Digest", "свежие новости каждый час", "news"},
		{"case insensitive", "GAMING HUB", "", "games"},
		{"no match falls back", "Просто канал", "", CategoryGeneral},
		{"empty input", "", "", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.title, tt.description))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	// Shared keywords must always resolve to the same category.
	first := Classify("инвестиции в недвижимость", "")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Classify("инвестиции в недвижимость", ""))
	}
}

func TestCategoriesCopy(t *testing.T) {
	got := Categories()
	got[0] = "mutated"
	assert.NotEqual(t, got[0], Categories()[0])
}
