// Package services contains the use-case orchestration of the lease
// analysis pipeline: ingest (chunk, embed, index) and the four query
// operations (ask, extract terms, red flags, summarise).
package services
