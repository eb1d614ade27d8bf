// Package ai defines the provider-agnostic chat completion model: role-tagged
// messages, the request/response envelope, and the [Provider] interface every
// completion backend must satisfy. The relay core speaks only these types;
// concrete API wiring lives in subpackages such as
// [github.com/leofalp/omnichat/providers/ai/openai].
package ai
