package strategies

import "regexp"

// Handle-like tokens inside catalog posts: @name, t.me/name,
// telegram.me/name. Handles shorter than four characters are noise.
var mentionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`@([a-zA-Z0-9_]+)`),
	regexp.MustCompile(`t\.me/([a-zA-Z0-9_]+)`),
	regexp.MustCompile(`telegram\.me/([a-zA-Z0-9_]+)`),
}

// extractMentions pulls deduplicated handle mentions out of free text,
// in order of first appearance.
func extractMentions(text string) []string {
	seen := make(map[string]bool)
	var mentions []string
	for _, pattern := range mentionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			handle := match[1]
			if len(handle) <= 3 || seen[handle] {
				continue
			}
			seen[handle] = true
			mentions = append(mentions, handle)
		}
	}
	return mentions
}
