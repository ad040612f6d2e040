// Package reindex provides functionality for re-embedding stored records
// with new or updated embedding models.
//
// This package supports batch processing of embedding records, progress
// tracking, retry logic with exponential backoff, and checkpointed resume
// for interrupted runs.
package reindex
