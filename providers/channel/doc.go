// Package channel defines the canonical inbound message shape and the
// [Normalizer] interface that maps heterogeneous webhook payloads onto it.
// Each supported channel ships one implementation in a subpackage
// (telegram, twilio); normalizers reshape payloads, they do not validate
// them.
package channel
