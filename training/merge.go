package training

import "sort"

// Merge combines this dataset with others and creates a new one. Operands
// are never modified: every merged container is deep-copied first, so the
// result shares no mutable sub-structure with any operand.
//
// Examples accumulate in order: this dataset's examples first, then each
// other's in argument order. Regex features are concatenated and re-sorted
// by the new instance's constructor. Synonym maps merge last-writer-wins:
// a key already mapped to a different canonical value produces a
// duplicate-synonym warning before being overwritten, surfacing operator
// error without blocking the merge. Phrase sets are unioned per entity
// type.
//
// Merging is associative but not commutative: with conflicting synonyms,
// argument order decides which value survives.
func (t *TrainingData) Merge(others ...*TrainingData) *TrainingData {
	examples := copyExamples(t.examples)
	synonyms := t.entitySynonyms.Copy()
	regexFeatures := append([]RegexFeature(nil), t.regexFeatures...)
	phrases := t.entityPhrases.Copy()

	var warnings []Warning
	for _, other := range others {
		examples = append(examples, copyExamples(other.examples)...)
		regexFeatures = append(regexFeatures, other.regexFeatures...)
		warnings = append(warnings, mergeEntitySynonyms(synonyms, other.entitySynonyms)...)
		mergeEntityPhrases(phrases, other.entityPhrases)
	}

	if t.settings.metrics != nil {
		t.settings.metrics.MergesTotal.Inc()
	}

	return newDataSet(examples, synonyms, regexFeatures, phrases, warnings, t.settings)
}

// mergeEntitySynonyms merges src into dst and returns a warning for every
// key that maps to conflicting canonical values. Keys are visited in sorted
// order so warning order is deterministic.
func mergeEntitySynonyms(dst, src EntitySynonyms) []Warning {
	keys := make([]string, 0, len(src))
	for text := range src {
		keys = append(keys, text)
	}
	sort.Strings(keys)

	var warnings []Warning
	for _, text := range keys {
		if w := checkDuplicateSynonym(dst, text, src[text], "merging training data"); w != nil {
			warnings = append(warnings, *w)
		}
		dst[text] = src[text]
	}
	return warnings
}

// mergeEntityPhrases unions src's phrase sets into dst per entity type.
func mergeEntityPhrases(dst, src EntityPhrases) {
	for entity, phrases := range src {
		if existing, ok := dst[entity]; ok {
			dst[entity] = existing.Union(phrases)
		} else {
			dst[entity] = phrases.Copy()
		}
	}
}
