// Package memory defines the Store interface for per-conversation history
// management. A conversation is identified by the (user id, channel) pair, so
// the same user talking on different channels keeps independent histories.
// Read methods return errors so that database-backed implementations can
// surface failures instead of silently swallowing them.
// The bundled reference implementation lives in the sibling package
// [github.com/leofalp/omnichat/providers/memory/inmemory].
package memory
