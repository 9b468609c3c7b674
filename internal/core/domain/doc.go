// Package domain contains the core types of the lease analysis pipeline:
// documents and their chunks, retrieval results, extracted lease terms,
// red flags, and the sentinel errors shared across layers.
package domain
