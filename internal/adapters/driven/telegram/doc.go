// Package telegram provides entity-client adapters for the Telegram
// platform surfaces the discovery engine searches.
//
// Adapters:
//   - Throttled: a rate-limiting decorator for any EntityClient,
//     protecting against flood-wait penalties
//   - fixture: a canned-dataset client for offline runs and tests
package telegram
