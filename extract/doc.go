// Package extract converts raw financial report documents into ordered
// lists of extraction records via format-specific adapters.
//
// Three adapters exist: QuickBooksAdapter for hierarchical profit-and-loss
// report trees, RootfiAdapter for flat multi-period API exports, and
// GenericAdapter as a low-confidence fallback. Each decodes its raw input
// into a typed intermediate representation at the parse boundary, so the
// extraction logic never walks open maps. Missing optional fields are
// defaulted and counted rather than failing the batch; only a malformed
// required document root aborts the parse, with a core.FormatError.
//
// The package also houses ScoreBatch, the data-quality completeness metric
// over a parsed batch.
package extract
