package driven

import (
	"context"
	"time"
)

// RawEntity is a minimally-normalized community record as reported by
// the platform search surface. Field presence is never trusted:
// strategies validate and default before admitting a record.
type RawEntity struct {
	// ID is the platform-assigned identifier, not yet normalized.
	ID string

	// Title is the display name; a record without one is malformed.
	Title string

	// Handle is the public username without "@", may be empty.
	Handle string

	// Broadcast is true for channels, false for groups.
	Broadcast bool

	// ParticipantCount is the reported member count, zero when the
	// surface omits it.
	ParticipantCount int

	// Description is the about text, may be empty.
	Description string

	// Verified reports the platform verification badge.
	Verified bool

	// Deactivated marks deleted or banned communities.
	Deactivated bool
}

// RawMessage is one content item fetched from an entity, newest first.
type RawMessage struct {
	// PeerID identifies the owning entity, not yet normalized.
	PeerID string

	// Text is the message body, may be empty for pure media posts.
	Text string

	// PostedAt is the publication time.
	PostedAt time.Time

	// Views is the view counter, zero when unreported.
	Views int

	// Reactions is the summed reaction count, zero when unreported.
	Reactions int

	// HasMedia reports an attached photo/video/document.
	HasMedia bool

	// IsForward reports the item was forwarded from another entity.
	IsForward bool
}

// MessageSearchResult pairs content hits with the entities that own
// them, mirroring how the platform returns global content searches.
type MessageSearchResult struct {
	// Messages are the matching content items.
	Messages []RawMessage

	// Entities are the owning communities referenced by Messages.
	Entities []RawEntity
}

// EntityClient exposes the platform's entity search/retrieval
// capability. It is assumed to be rate-limited by the remote side;
// callers throttle accordingly. Every method is a network round trip
// and honours context cancellation.
type EntityClient interface {
	// SearchEntities performs a global title/handle search.
	SearchEntities(ctx context.Context, query string, limit int) ([]RawEntity, error)

	// SearchContacts searches the resolvable-peers surface.
	SearchContacts(ctx context.Context, query string, limit int) ([]RawEntity, error)

	// SearchMessages searches global message content and returns hits
	// together with their owning entities.
	SearchMessages(ctx context.Context, query string, limit int) (MessageSearchResult, error)

	// ResolveHandle looks up one entity by public handle.
	// Returns domain.ErrEntityNotFound when the handle is unknown.
	ResolveHandle(ctx context.Context, handle string) (RawEntity, error)

	// RecentMessages fetches up to limit most recent content items for
	// an entity, newest first.
	RecentMessages(ctx context.Context, identity string, limit int) ([]RawMessage, error)

	// Close releases resources.
	Close() error
}
