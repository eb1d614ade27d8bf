// Package openai implements [ai.Provider] on top of the OpenAI
// chat-completions API (/v1/chat/completions). Any OpenAI-compatible gateway
// can be targeted by overriding the base URL.
package openai
