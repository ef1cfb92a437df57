package training

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/nludata/config"
	"github.com/c360/nludata/metric"
)

func TestNew_NormalizesIntentWhitespace(t *testing.T) {
	ex := NewExample("book me a flight").WithIntent("  book_flight  ")
	td := New([]*Example{ex}, nil, nil, nil)

	intent, ok := td.Examples()[0].Intent()
	require.True(t, ok)
	assert.Equal(t, "book_flight", intent)
}

func TestNew_AbsentIntentStaysAbsent(t *testing.T) {
	ex := NewExample("hello there")
	td := New([]*Example{ex}, nil, nil, nil)

	_, ok := td.Examples()[0].Intent()
	assert.False(t, ok)
	assert.Empty(t, td.Intents())
	assert.Empty(t, td.ExamplesPerIntent())
}

func TestNew_SortsRegexFeatures(t *testing.T) {
	features := []RegexFeature{
		{Name: "b", Pattern: "x"},
		{Name: "a", Pattern: "y"},
	}
	td := New(nil, nil, features, nil)

	expected := []RegexFeature{
		{Name: "a", Pattern: "y"},
		{Name: "b", Pattern: "x"},
	}
	assert.Equal(t, expected, td.RegexFeatures())
}

func TestNew_RegexOrderingUsesConcatenatedKey(t *testing.T) {
	// Concatenation, not tuple comparison: "x+a+" sorts before "x+b"
	// even though the name "x" precedes "x+a".
	features := []RegexFeature{
		{Name: "x", Pattern: "b"},
		{Name: "x+a", Pattern: ""},
	}
	td := New(nil, nil, features, nil)

	expected := []RegexFeature{
		{Name: "x+a", Pattern: ""},
		{Name: "x", Pattern: "b"},
	}
	assert.Equal(t, expected, td.RegexFeatures())
}

func TestNew_DefaultsToEmptyContainers(t *testing.T) {
	td := New(nil, nil, nil, nil)

	assert.Empty(t, td.Examples())
	assert.Empty(t, td.EntitySynonyms())
	assert.Empty(t, td.RegexFeatures())
	assert.Empty(t, td.EntityPhrases())
	assert.Empty(t, td.Warnings())
}

func TestDerivedViews(t *testing.T) {
	examples := []*Example{
		NewExample("hey").WithIntent("greet"),
		NewExample("hello").WithIntent("greet"),
		NewExample("to Berlin").WithIntent("book_flight").WithEntities(
			EntitySpan{"entity": "city", "start": 3, "end": 9, "value": "Berlin"},
		),
		NewExample("from Paris to London").WithEntities(
			EntitySpan{"entity": "city", "start": 5, "end": 10, "value": "Paris"},
			EntitySpan{"entity": "city", "start": 14, "end": 20, "value": "London"},
		),
	}
	td := New(examples, nil, nil, nil)

	assert.Len(t, td.IntentExamples(), 3)
	assert.Len(t, td.EntityExamples(), 2)
	assert.Equal(t, []string{"book_flight", "greet"}, td.Intents())
	assert.Equal(t, map[string]int{"greet": 2, "book_flight": 1}, td.ExamplesPerIntent())
	assert.Equal(t, []string{"city"}, td.Entities())
	assert.Equal(t, map[string]int{"city": 3}, td.ExamplesPerEntity())
}

func TestIntents_EmptyStringIsDistinctFromAbsent(t *testing.T) {
	examples := []*Example{
		NewExample("   ").WithIntent("   "), // normalizes to ""
		NewExample("no intent at all"),
	}
	td := New(examples, nil, nil, nil)

	assert.Equal(t, []string{""}, td.Intents())
	assert.Equal(t, map[string]int{"": 1}, td.ExamplesPerIntent())
	assert.Empty(t, td.IntentExamples(),
		"empty-string intents are distinct but not usable as intent examples")
}

func TestIntentExamples_ExcludesEmptyIntent(t *testing.T) {
	examples := []*Example{
		NewExample("odd").WithIntent("   "), // normalizes to ""
		NewExample("hey").WithIntent("greet"),
	}
	td := New(examples, nil, nil, nil)

	require.Len(t, td.IntentExamples(), 1)
	intent, _ := td.IntentExamples()[0].Intent()
	assert.Equal(t, "greet", intent)

	sorted := td.SortedIntentExamples()
	require.Len(t, sorted, 1)
	assert.Equal(t, "hey", sorted[0].Text())

	assert.Equal(t, []string{"", "greet"}, td.Intents())
	assert.Equal(t, map[string]int{"": 1, "greet": 1}, td.ExamplesPerIntent())
}

func TestSortedIntentExamples(t *testing.T) {
	examples := []*Example{
		NewExample("stripes").WithIntent("zebra"),
		NewExample("crunchy").WithIntent("apple"),
	}
	td := New(examples, nil, nil, nil)

	sorted := td.SortedIntentExamples()
	require.Len(t, sorted, 2)
	first, _ := sorted[0].Intent()
	second, _ := sorted[1].Intent()
	assert.Equal(t, "apple", first)
	assert.Equal(t, "zebra", second)

	// The underlying view keeps load order.
	original, _ := td.IntentExamples()[0].Intent()
	assert.Equal(t, "zebra", original)
}

func TestSortedEntities(t *testing.T) {
	examples := []*Example{
		NewExample("a").WithEntities(
			EntitySpan{"entity": "location", "value": "x"},
			EntitySpan{"entity": "city", "value": "y"},
		),
		NewExample("b").WithEntities(
			EntitySpan{"entity": "city", "value": "z"},
		),
	}
	td := New(examples, nil, nil, nil)

	spans := td.SortedEntities()
	require.Len(t, spans, 3)
	assert.Equal(t, "city", spans[0].Entity())
	assert.Equal(t, "city", spans[1].Entity())
	assert.Equal(t, "location", spans[2].Entity())

	// Stable: equal keys keep their original relative order.
	assert.Equal(t, "y", spans[0]["value"])
	assert.Equal(t, "z", spans[1]["value"])
}

func TestValidate_WarnsBelowMinimumIntent(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		wantsWarns bool
	}{
		{"one example warns", 1, true},
		{"two examples pass", 2, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var examples []*Example
			for i := 0; i < test.count; i++ {
				examples = append(examples, NewExample("hi").WithIntent("greet"))
			}
			td := New(examples, nil, nil, nil)

			warnings := warningsOfKind(td.Warnings(), WarnIntentBelowMinimum)
			if test.wantsWarns {
				require.Len(t, warnings, 1)
				assert.Equal(t, "greet", warnings[0].Subject)
				assert.Equal(t, test.count, warnings[0].Count)
				assert.Equal(t, config.DefaultMinExamplesPerIntent, warnings[0].Minimum)
			} else {
				assert.Empty(t, warnings)
			}
		})
	}
}

func TestValidate_WarnsBelowMinimumEntity(t *testing.T) {
	examples := []*Example{
		NewExample("to Berlin").WithIntent("book_flight").WithEntities(
			EntitySpan{"entity": "city", "value": "Berlin"},
		),
		NewExample("another booking").WithIntent("book_flight"),
	}
	td := New(examples, nil, nil, nil)

	warnings := warningsOfKind(td.Warnings(), WarnEntityBelowMinimum)
	require.Len(t, warnings, 1)
	assert.Equal(t, "city", warnings[0].Subject)
	assert.Equal(t, 1, warnings[0].Count)
	assert.Equal(t, config.DefaultMinExamplesPerEntity, warnings[0].Minimum)
}

func TestValidate_WarnsOnEmptyIntent(t *testing.T) {
	examples := []*Example{
		NewExample("one").WithIntent(" "),
		NewExample("two").WithIntent(""),
	}
	td := New(examples, nil, nil, nil)

	assert.Len(t, warningsOfKind(td.Warnings(), WarnEmptyIntent), 1)
}

func TestValidate_CustomThresholds(t *testing.T) {
	examples := []*Example{
		NewExample("hi").WithIntent("greet"),
	}
	td := New(examples, nil, nil, nil, WithValidation(config.Validation{
		MinExamplesPerIntent: 1,
		MinExamplesPerEntity: 1,
	}))

	assert.Empty(t, warningsOfKind(td.Warnings(), WarnIntentBelowMinimum))
}

func TestValidate_IsPureAndRepeatable(t *testing.T) {
	examples := []*Example{
		NewExample("hi").WithIntent("greet"),
	}
	td := New(examples, nil, nil, nil)

	first := td.Validate()
	second := td.Validate()
	assert.Equal(t, first, second)
	assert.Equal(t, td.Warnings(), first)
}

func TestNew_RecordsMetrics(t *testing.T) {
	m := metric.NewMetrics()
	examples := []*Example{
		NewExample("hey").WithIntent("greet"),
		NewExample("hello").WithIntent("greet"),
	}
	td := New(examples, nil, nil, nil, WithMetrics(m))
	td.Merge(New(nil, nil, nil, nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DatasetsConstructed),
		"base dataset and merged dataset; the other carries no metrics")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MergesTotal))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.ExamplesIngested))
}

func warningsOfKind(warnings []Warning, kind WarningKind) []Warning {
	var out []Warning
	for _, w := range warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
