// Package parse provides tolerant JSON decoding for payloads produced by
// LLM-compatible APIs and gateways. Responses that fail strict unmarshaling
// are run through jsonrepair and decoded again, so minor malformations
// (single quotes, trailing commas, unquoted keys) do not turn into hard
// failures.
package parse
