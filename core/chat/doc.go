// Package chat provides the orchestration layer between validated inbound
// messages and the completion provider. A [Service] runs each turn as a
// single linear pipeline: history read, prompt assembly, completion call,
// history update. Upstream failures never escape [Service.Handle]; callers
// always receive a reply string, degraded to [FallbackReply] when the
// provider fails.
package chat
