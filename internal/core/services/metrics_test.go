package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

func TestCollectComputesAverages(t *testing.T) {
	newest := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	client := &fakeEntityClient{messages: []driven.RawMessage{
		{Text: "first post", PostedAt: newest, Views: 300, Reactions: 30, HasMedia: true},
		{Text: "second", PostedAt: newest.Add(-5 * 24 * time.Hour), Views: 200, Reactions: 20, IsForward: true},
		{Text: "third", PostedAt: newest.Add(-10 * 24 * time.Hour), Views: 100, Reactions: 10},
	}}
	collector := NewMetricsCollector(client)

	candidate := domain.SearchCandidate{Identity: "1", Handle: "chan", ParticipantCount: 5000}
	metrics, _, err := collector.Collect(context.Background(), candidate)
	require.NoError(t, err)

	assert.Equal(t, 5000, metrics.SubscriberCount)
	assert.Equal(t, 3, metrics.PostsSampled)
	assert.InDelta(t, 0.3, metrics.AvgPostsPerDay, 0.001)
	assert.Equal(t, 200, metrics.AvgViewsPerPost)
	assert.Equal(t, 20, metrics.AvgReactionsPerPost)
	assert.Equal(t, 33, metrics.MediaRatio)
	assert.Equal(t, 33, metrics.ForwardRatio)
	assert.Equal(t, newest, metrics.LastPostAt)
}

func TestCollectPrefersHandleOverIdentity(t *testing.T) {
	client := &fakeEntityClient{}
	collector := NewMetricsCollector(client)

	_, _, err := collector.Collect(context.Background(), domain.SearchCandidate{
		Identity: "42", Handle: "myhandle",
	})
	require.NoError(t, err)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "myhandle", client.calls[0])

	_, _, err = collector.Collect(context.Background(), domain.SearchCandidate{Identity: "42"})
	require.NoError(t, err)
	assert.Equal(t, "42", client.calls[1])
}

func TestCollectZeroPostsIsSuccess(t *testing.T) {
	collector := NewMetricsCollector(&fakeEntityClient{})

	metrics, samples, err := collector.Collect(context.Background(), domain.SearchCandidate{
		Identity: "1", ParticipantCount: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, metrics.PostsSampled)
	assert.Equal(t, 100, metrics.SubscriberCount)
	assert.Zero(t, metrics.AvgPostsPerDay)
	assert.Empty(t, samples)
}

func TestCollectTransportFailure(t *testing.T) {
	collector := NewMetricsCollector(&fakeEntityClient{err: errors.New("connection reset")})

	metrics, _, err := collector.Collect(context.Background(), domain.SearchCandidate{
		Identity: "1", ParticipantCount: 100,
	})

	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
	// The returned metrics still carry the safe zero-sample state.
	assert.Equal(t, 0, metrics.PostsSampled)
	assert.Equal(t, 100, metrics.SubscriberCount)
}

func TestCollectSkipsEmptyItems(t *testing.T) {
	now := time.Now()
	client := &fakeEntityClient{messages: []driven.RawMessage{
		{Text: "real post", PostedAt: now, Views: 100},
		{Text: "", PostedAt: now, Views: 900},              // malformed: no text, no media
		{Text: "", PostedAt: now, Views: 50, HasMedia: true}, // media-only counts
	}}
	collector := NewMetricsCollector(client)

	metrics, _, err := collector.Collect(context.Background(), domain.SearchCandidate{Identity: "1"})
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.PostsSampled)
	assert.Equal(t, 75, metrics.AvgViewsPerPost)
}

func TestCollectSpanFloorsAtOneDay(t *testing.T) {
	now := time.Now()
	client := &fakeEntityClient{messages: []driven.RawMessage{
		{Text: "a post", PostedAt: now},
		{Text: "b post", PostedAt: now.Add(-time.Hour)},
	}}
	collector := NewMetricsCollector(client)

	metrics, _, err := collector.Collect(context.Background(), domain.SearchCandidate{Identity: "1"})
	require.NoError(t, err)
	// Two posts an hour apart must not report 48 posts/day.
	assert.InDelta(t, 2.0, metrics.AvgPostsPerDay, 0.001)
}

func TestExcerptsSelection(t *testing.T) {
	now := time.Now()
	long := strings.Repeat("x", 600)
	messages := []driven.RawMessage{
		{Text: "short", PostedAt: now},
		{Text: "this one is long enough to be an excerpt", PostedAt: now},
		{Text: long, PostedAt: now},
	}
	for i := 0; i < 10; i++ {
		messages = append(messages, driven.RawMessage{
			Text: "another sufficiently long message body here", PostedAt: now,
		})
	}

	samples := excerpts(messages)
	require.Len(t, samples, maxExcerpts)
	assert.Equal(t, "this one is long enough to be an excerpt", samples[0].Text)
	// Long texts are truncated for prompt assembly.
	assert.Len(t, []rune(samples[1].Text), excerptMaxLen)
}
