// Package server exposes the relay over HTTP: the generic chat endpoint,
// conversation history read/clear, channel webhooks, and a health probe.
// This layer owns request decoding and boundary validation; everything that
// passes validation is delegated to the chat service, which never surfaces
// upstream failures back to it.
package server
