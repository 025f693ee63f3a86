package services

import (
	"context"
	"fmt"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
	"github.com/chanscout/chanscout-cli/internal/logger"
)

// Sampling bounds for the metrics collector.
const (
	DefaultSampleSize = 50

	// maxExcerpts caps the content samples handed to the assessor.
	maxExcerpts = 5

	// excerptMaxLen truncates each sample before prompt assembly.
	excerptMaxLen = 500

	// minExcerptLen drops trivially short posts from the excerpt set.
	minExcerptLen = 20
)

// MetricsCollector samples recent content of one candidate and
// computes activity statistics.
type MetricsCollector struct {
	client     driven.EntityClient
	sampleSize int
}

// NewMetricsCollector creates a collector over the platform surface.
func NewMetricsCollector(client driven.EntityClient) *MetricsCollector {
	return &MetricsCollector{client: client, sampleSize: DefaultSampleSize}
}

// Collect fetches a bounded recent-content sample and computes
// activity metrics, returning alongside up to five truncated content
// excerpts for the assessor.
//
// Zero retrievable items is success, not failure: the metrics come
// back with PostsSampled 0 and all derived fields zero. A transport or
// access failure is reported as domain.ErrMetricsUnavailable.
func (m *MetricsCollector) Collect(
	ctx context.Context, candidate domain.SearchCandidate,
) (domain.ActivityMetrics, []domain.ContentSample, error) {
	metrics := domain.ActivityMetrics{SubscriberCount: candidate.ParticipantCount}

	target := candidate.Handle
	if target == "" {
		target = candidate.Identity
	}
	logger.Debug("Collecting metrics for %s (sample %d)", target, m.sampleSize)

	messages, err := m.client.RecentMessages(ctx, target, m.sampleSize)
	if err != nil {
		return metrics, nil, fmt.Errorf("%w: %s: %v", domain.ErrMetricsUnavailable, target, err)
	}
	if len(messages) == 0 {
		logger.Debug("No messages retrievable for %s", target)
		return metrics, nil, nil
	}

	var totalViews, totalReactions, totalLength, mediaCount, forwardCount int
	sampled := 0
	for _, msg := range messages {
		// Skip per-item malformed records: no text and no media.
		if msg.Text == "" && !msg.HasMedia {
			continue
		}
		sampled++
		totalViews += msg.Views
		totalReactions += msg.Reactions
		totalLength += len([]rune(msg.Text))
		if msg.HasMedia {
			mediaCount++
		}
		if msg.IsForward {
			forwardCount++
		}
	}
	if sampled == 0 {
		return metrics, nil, nil
	}

	// Messages arrive newest first.
	newest, oldest := messages[0].PostedAt, messages[len(messages)-1].PostedAt
	spanDays := newest.Sub(oldest).Hours() / 24
	if spanDays < 1 {
		spanDays = 1
	}

	metrics.PostsSampled = sampled
	metrics.AvgPostsPerDay = float64(sampled) / spanDays
	metrics.AvgViewsPerPost = totalViews / sampled
	metrics.AvgReactionsPerPost = totalReactions / sampled
	metrics.AvgPostLength = totalLength / sampled
	metrics.MediaRatio = percentage(mediaCount, sampled)
	metrics.ForwardRatio = percentage(forwardCount, sampled)
	metrics.LastPostAt = newest

	return metrics, excerpts(messages), nil
}

// excerpts selects up to maxExcerpts substantive messages, truncated
// for prompt assembly.
func excerpts(messages []driven.RawMessage) []domain.ContentSample {
	samples := make([]domain.ContentSample, 0, maxExcerpts)
	for _, msg := range messages {
		if len([]rune(msg.Text)) <= minExcerptLen {
			continue
		}
		samples = append(samples, domain.ContentSample{
			Text:      truncate(msg.Text, excerptMaxLen),
			PostedAt:  msg.PostedAt,
			Views:     msg.Views,
			Reactions: msg.Reactions,
			HasMedia:  msg.HasMedia,
			IsForward: msg.IsForward,
		})
		if len(samples) == maxExcerpts {
			break
		}
	}
	return samples
}

func percentage(part, whole int) int {
	return int(float64(part)/float64(whole)*100 + 0.5)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
