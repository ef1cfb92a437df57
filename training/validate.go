package training

import (
	"fmt"
	"sort"
)

// WarningKind classifies validation and merge diagnostics.
type WarningKind string

const (
	// WarnEmptyIntent flags an example whose intent normalizes to "".
	WarnEmptyIntent WarningKind = "empty_intent"

	// WarnIntentBelowMinimum flags an intent with fewer examples than the
	// configured minimum.
	WarnIntentBelowMinimum WarningKind = "intent_below_minimum"

	// WarnEntityBelowMinimum flags an entity type with fewer entity-span
	// occurrences than the configured minimum.
	WarnEntityBelowMinimum WarningKind = "entity_below_minimum"

	// WarnDuplicateSynonym flags a synonym key mapped to conflicting
	// canonical values across merged datasets.
	WarnDuplicateSynonym WarningKind = "duplicate_synonym"
)

// Warning is a structured, non-fatal diagnostic. Warnings are collected on
// the dataset rather than only logged, so callers and tests can assert on
// them without capturing log output. They never block construction or merge.
type Warning struct {
	// Kind classifies the diagnostic.
	Kind WarningKind

	// Subject is the intent name, entity type, or synonym surface text
	// the warning is about.
	Subject string

	// Count and Minimum carry the observed and required example counts
	// for below-minimum warnings; zero otherwise.
	Count   int
	Minimum int

	// Context names the operation that produced the warning, e.g.
	// "merging training data". Empty for construction-time validation.
	Context string
}

// String renders the warning as a human-readable message.
func (w Warning) String() string {
	switch w.Kind {
	case WarnEmptyIntent:
		return "found empty intent, check your training data; this may result in wrong intent predictions"
	case WarnIntentBelowMinimum:
		return fmt.Sprintf("intent %q has only %d training examples, minimum is %d; training may fail",
			w.Subject, w.Count, w.Minimum)
	case WarnEntityBelowMinimum:
		return fmt.Sprintf("entity %q has only %d training examples, minimum is %d; training may fail",
			w.Subject, w.Count, w.Minimum)
	case WarnDuplicateSynonym:
		return fmt.Sprintf("synonym %q has conflicting canonical values while %s; keeping the later value",
			w.Subject, w.Context)
	default:
		return string(w.Kind)
	}
}

// Validate inspects the fully constructed aggregate and returns zero or
// more non-fatal warnings. It never mutates state and never fails.
//
// Rules, each independently checked:
//   - an empty-string intent is present
//   - an intent has fewer examples than the configured minimum
//   - an entity type has fewer entity-span occurrences than the minimum
//
// The warnings returned here are also collected on the dataset at
// construction time; see Warnings.
func (t *TrainingData) Validate() []Warning {
	var warnings []Warning

	if _, ok := t.intents[""]; ok {
		warnings = append(warnings, Warning{Kind: WarnEmptyIntent})
	}

	for _, intent := range sortedKeys(t.examplesPerIntent) {
		count := t.examplesPerIntent[intent]
		if count < t.settings.validation.MinExamplesPerIntent {
			warnings = append(warnings, Warning{
				Kind:    WarnIntentBelowMinimum,
				Subject: intent,
				Count:   count,
				Minimum: t.settings.validation.MinExamplesPerIntent,
			})
		}
	}

	for _, entity := range sortedKeys(t.examplesPerEntity) {
		count := t.examplesPerEntity[entity]
		if count < t.settings.validation.MinExamplesPerEntity {
			warnings = append(warnings, Warning{
				Kind:    WarnEntityBelowMinimum,
				Subject: entity,
				Count:   count,
				Minimum: t.settings.validation.MinExamplesPerEntity,
			})
		}
	}

	return warnings
}

// checkDuplicateSynonym reports a conflict when text is already mapped to a
// different canonical value. No warning when the key is absent or the
// values agree.
func checkDuplicateSynonym(synonyms EntitySynonyms, text, canonical, context string) *Warning {
	existing, ok := synonyms[text]
	if !ok || existing == canonical {
		return nil
	}
	return &Warning{
		Kind:    WarnDuplicateSynonym,
		Subject: text,
		Context: context,
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
