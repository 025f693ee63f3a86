package domain

import "strings"

// Channel-style peer references carry this marker prefix on some
// surfaces; the bare numeric form is canonical here.
const channelPeerPrefix = "-100"

// NormalizeIdentity canonicalises a platform entity identifier so that
// the same community compares equal regardless of which retrieval
// surface reported it.
//
// Content-search surfaces return bare channel IDs ("2686615681") while
// chat-style references prefix the same ID with "-100"
// ("-1002686615681"). Both forms normalize to the bare positive form.
// Plain negative group IDs keep their sign with the "-" preserved so
// groups and channels with coincidentally equal digits stay distinct.
//
// The transform is intentionally the single place identity
// canonicalisation happens; comparison sites must never inline it.
func NormalizeIdentity(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(id, channelPeerPrefix); ok && isDigits(rest) && rest != "" {
		return rest
	}
	return id
}

// SameEntity reports whether two raw identifiers refer to the same
// entity after normalization.
func SameEntity(a, b string) bool {
	return NormalizeIdentity(a) == NormalizeIdentity(b)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
