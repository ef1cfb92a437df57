// Package training holds the in-memory corpus of natural-language training
// examples (intents, entities, synonyms, regex features) that format
// readers populate and trainers consume.
//
// # Core Concepts
//
// TrainingData is the canonical aggregate. It is constructed once from
// already-parsed inputs, normalizes and validates itself immediately, and
// is read-only afterwards:
//
//	examples := []*training.Example{
//		training.NewExample("book me a flight").WithIntent("book_flight"),
//	}
//	td := training.New(examples, nil, nil, nil)
//
// Multiple datasets (for example, loaded from different files) merge into
// a single new instance without mutating the operands:
//
//	merged := a.Merge(b, c)
//
// # Determinism
//
// Downstream writers rely on deterministic output. Regex features are kept
// canonically sorted by name+"+"+pattern, and the SortedEntities and
// SortedIntentExamples views provide stable orderings of the remaining
// collections. Writers must use these views, never the raw example list.
//
// # Diagnostics
//
// Validation and merge conflicts produce structured Warning records,
// collected on the dataset and logged via slog. Warnings are advisory
// only: nothing in this package fails construction or merge.
package training
