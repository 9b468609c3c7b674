// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the embedding model, the local LLM runtime,
// document text extraction, and document storage.
package driven
