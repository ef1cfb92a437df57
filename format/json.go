package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/c360/nludata/training"
)

// JSONWriter serializes a TrainingData into its canonical JSON form: the
// sorted intent and entity examples, the synonym mapping, the canonically
// sorted regex features, and the entity phrases with each phrase set
// rendered as a sorted list (sets are not order-stable).
type JSONWriter struct {
	indent int
}

// JSONOption configures a JSONWriter.
type JSONOption func(*JSONWriter)

// WithIndent sets the number of spaces used for indentation. Zero produces
// compact output.
func WithIndent(spaces int) JSONOption {
	return func(w *JSONWriter) {
		w.indent = spaces
	}
}

// NewJSONWriter creates a JSON writer. The default output is compact;
// persisted training data conventionally uses WithIndent(2).
func NewJSONWriter(opts ...JSONOption) *JSONWriter {
	w := &JSONWriter{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ training.Writer = (*JSONWriter)(nil)

// jsonDocument is the canonical wire shape. Field names are relied upon by
// downstream consumers and must not change.
type jsonDocument struct {
	IntentExamples []jsonExample           `json:"intent_examples"`
	EntityExamples []jsonExample           `json:"entity_examples"`
	EntitySynonyms training.EntitySynonyms `json:"entity_synonyms"`
	RegexFeatures  []training.RegexFeature `json:"regex_features"`
	EntityPhrases  map[string][]string     `json:"entity_phrases"`
}

// jsonExample is one serialized utterance. Intent is a pointer so an
// empty-string intent (present but degenerate) survives the round trip
// while an absent intent is omitted.
type jsonExample struct {
	Text     string                `json:"text"`
	Intent   *string               `json:"intent,omitempty"`
	Entities []training.EntitySpan `json:"entities,omitempty"`
}

// Dump implements training.Writer.
func (w *JSONWriter) Dump(td *training.TrainingData) (string, error) {
	doc := jsonDocument{
		IntentExamples: toJSONExamples(td.SortedIntentExamples()),
		EntityExamples: toJSONExamples(sortedByText(td.EntityExamples())),
		EntitySynonyms: td.EntitySynonyms(),
		RegexFeatures:  td.RegexFeatures(),
		EntityPhrases:  make(map[string][]string),
	}
	if doc.RegexFeatures == nil {
		doc.RegexFeatures = []training.RegexFeature{}
	}
	for entity, phrases := range td.EntityPhrases() {
		doc.EntityPhrases[entity] = phrases.Sorted()
	}

	var (
		data []byte
		err  error
	)
	if w.indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", w.indent))
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", fmt.Errorf("format.JSONWriter: marshal failed: %w", err)
	}
	return string(data), nil
}

// sortedByText orders entity examples by utterance text so the serialized
// form does not depend on load order. Stable for equal texts.
func sortedByText(examples []*training.Example) []*training.Example {
	out := make([]*training.Example, len(examples))
	copy(out, examples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Text() < out[j].Text()
	})
	return out
}

func toJSONExamples(examples []*training.Example) []jsonExample {
	out := make([]jsonExample, 0, len(examples))
	for _, ex := range examples {
		je := jsonExample{
			Text:     ex.Text(),
			Entities: ex.Entities(),
		}
		if intent, ok := ex.Intent(); ok {
			je.Intent = &intent
		}
		out = append(out, je)
	}
	return out
}
