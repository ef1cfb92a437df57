// Package format provides writers that serialize a finalized TrainingData.
//
// Writers implement the training.Writer interface and consume only the
// aggregate's canonical sorted views, so their output is deterministic for
// a given dataset. Two formats are provided:
//
//   - JSONWriter: the canonical JSON form used for persistence
//   - MarkdownWriter: the human-editable markdown training format
//
// Parsing (reading these formats back) is intentionally not part of this
// package.
package format
