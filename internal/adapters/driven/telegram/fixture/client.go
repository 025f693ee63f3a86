// Package fixture provides a canned-dataset EntityClient. It backs
// offline demo runs and tests that need deterministic platform
// responses without network access or an authorized session.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.EntityClient = (*Client)(nil)

// Dataset is the canned platform state a Client serves.
type Dataset struct {
	Entities []driven.RawEntity  `json:"entities"`
	Messages []driven.RawMessage `json:"messages"`
}

// Client serves searches from a fixed dataset. Matching is
// case-insensitive substring search, which is close enough to the live
// surfaces for demos and tests.
type Client struct {
	data Dataset
}

// NewClient creates a fixture client over the given dataset.
func NewClient(data Dataset) *Client {
	return &Client{data: data}
}

// LoadClient reads a JSON dataset file and builds a client from it.
func LoadClient(path string) (*Client, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %w", path, err)
	}
	return NewClient(data), nil
}

// SearchEntities matches the query against title, handle and
// description of every entity.
func (c *Client) SearchEntities(_ context.Context, query string, limit int) ([]driven.RawEntity, error) {
	q := strings.ToLower(query)
	var found []driven.RawEntity
	for _, e := range c.data.Entities {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Handle), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			found = append(found, e)
			if len(found) >= limit {
				break
			}
		}
	}
	return found, nil
}

// SearchContacts matches only against handles, mimicking the narrower
// resolvable-peers surface.
func (c *Client) SearchContacts(_ context.Context, query string, limit int) ([]driven.RawEntity, error) {
	q := strings.ToLower(query)
	var found []driven.RawEntity
	for _, e := range c.data.Entities {
		if e.Handle != "" && strings.Contains(strings.ToLower(e.Handle), q) {
			found = append(found, e)
			if len(found) >= limit {
				break
			}
		}
	}
	return found, nil
}

// SearchMessages matches the query against message text and pairs the
// hits with their owning entities.
func (c *Client) SearchMessages(_ context.Context, query string, limit int) (driven.MessageSearchResult, error) {
	q := strings.ToLower(query)
	var result driven.MessageSearchResult
	owners := make(map[string]bool)
	for _, m := range c.data.Messages {
		if !strings.Contains(strings.ToLower(m.Text), q) {
			continue
		}
		result.Messages = append(result.Messages, m)
		owners[m.PeerID] = true
		if len(result.Messages) >= limit {
			break
		}
	}
	for _, e := range c.data.Entities {
		if owners[e.ID] {
			result.Entities = append(result.Entities, e)
		}
	}
	return result, nil
}

// ResolveHandle looks up one entity by exact handle.
func (c *Client) ResolveHandle(_ context.Context, handle string) (driven.RawEntity, error) {
	h := strings.ToLower(strings.TrimPrefix(handle, "@"))
	for _, e := range c.data.Entities {
		if strings.ToLower(e.Handle) == h {
			return e, nil
		}
	}
	return driven.RawEntity{}, fmt.Errorf("handle @%s: %w", handle, domain.ErrEntityNotFound)
}

// RecentMessages returns the entity's messages, newest first. The
// entity may be addressed by ID or by handle; handles are mapped back
// to the owning ID through the entity table so both forms serve the
// same posts.
func (c *Client) RecentMessages(_ context.Context, identity string, limit int) ([]driven.RawMessage, error) {
	id := domain.NormalizeIdentity(identity)
	h := strings.ToLower(strings.TrimPrefix(identity, "@"))
	for _, e := range c.data.Entities {
		if e.Handle != "" && strings.ToLower(e.Handle) == h {
			id = domain.NormalizeIdentity(e.ID)
			break
		}
	}
	var messages []driven.RawMessage
	for _, m := range c.data.Messages {
		if domain.NormalizeIdentity(m.PeerID) == id || strings.EqualFold(m.PeerID, identity) {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].PostedAt.After(messages[j].PostedAt)
	})
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// Close is a no-op for the fixture client.
func (c *Client) Close() error {
	return nil
}
