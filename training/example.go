package training

import "sort"

// Attribute keys used by the training data aggregate. Examples may carry
// arbitrary additional attributes; these are the only keys the aggregate
// itself interprets.
const (
	AttrText     = "text"
	AttrIntent   = "intent"
	AttrEntities = "entities"
)

// EntitySpan is one labeled span inside an utterance. The aggregate treats
// it opaquely except for the "entity" key, which names the entity type and
// is used for grouping and sorting. Positional and value fields ("start",
// "end", "value") are carried through untouched.
type EntitySpan map[string]any

// Entity returns the entity type name, or "" when the span has no "entity"
// key or a non-string one.
func (s EntitySpan) Entity() string {
	name, _ := s["entity"].(string)
	return name
}

// Copy returns a deep copy of the span.
func (s EntitySpan) Copy() EntitySpan {
	out := make(EntitySpan, len(s))
	for k, v := range s {
		out[k] = deepCopyValue(v)
	}
	return out
}

// RegexFeature is a named regular-expression hint assisting extraction.
// It is a lightweight rule hint, not validated beyond its shape.
type RegexFeature struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// sortKey is the composite ordering key for canonical regex feature order.
// String concatenation, not tuple comparison: "a"+"+"+"y" sorts before
// "b"+"+"+"x".
func (r RegexFeature) sortKey() string {
	return r.Name + "+" + r.Pattern
}

// EntitySynonyms maps a surface text variant to its canonical entity value.
type EntitySynonyms map[string]string

// Copy returns an independent copy of the synonym map.
func (s EntitySynonyms) Copy() EntitySynonyms {
	out := make(EntitySynonyms, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// PhraseSet is a set of known phrase strings for one entity type.
type PhraseSet map[string]struct{}

// NewPhraseSet builds a set from the given phrases.
func NewPhraseSet(phrases ...string) PhraseSet {
	set := make(PhraseSet, len(phrases))
	for _, p := range phrases {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the phrase is in the set.
func (p PhraseSet) Has(phrase string) bool {
	_, ok := p[phrase]
	return ok
}

// Union returns a new set containing the phrases of both sets.
func (p PhraseSet) Union(other PhraseSet) PhraseSet {
	out := make(PhraseSet, len(p)+len(other))
	for phrase := range p {
		out[phrase] = struct{}{}
	}
	for phrase := range other {
		out[phrase] = struct{}{}
	}
	return out
}

// Copy returns an independent copy of the set.
func (p PhraseSet) Copy() PhraseSet {
	out := make(PhraseSet, len(p))
	for phrase := range p {
		out[phrase] = struct{}{}
	}
	return out
}

// Sorted returns the phrases as a sorted slice. Sets are not order-stable,
// so serialization always goes through this.
func (p PhraseSet) Sorted() []string {
	out := make([]string, 0, len(p))
	for phrase := range p {
		out = append(out, phrase)
	}
	sort.Strings(out)
	return out
}

// EntityPhrases maps an entity type name to its known phrases.
type EntityPhrases map[string]PhraseSet

// Copy returns a deep copy of the phrase map.
func (e EntityPhrases) Copy() EntityPhrases {
	out := make(EntityPhrases, len(e))
	for entity, phrases := range e {
		out[entity] = phrases.Copy()
	}
	return out
}

// Example is one annotated training utterance. It is an opaque record with
// get/set-by-key access; the aggregate only interprets the text, intent and
// entities attributes. An Example is owned by the TrainingData holding it
// and is never shared across datasets except through deep copy during merge.
type Example struct {
	attrs map[string]any
}

// NewExample creates an example for the given utterance text.
func NewExample(text string) *Example {
	return &Example{attrs: map[string]any{AttrText: text}}
}

// NewExampleWithAttrs creates an example from raw attributes, typically
// produced by a format reader. The map is adopted, not copied.
func NewExampleWithAttrs(attrs map[string]any) *Example {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &Example{attrs: attrs}
}

// Get returns the attribute stored under key, or nil when absent.
func (e *Example) Get(key string) any {
	return e.attrs[key]
}

// Set stores an attribute under key.
func (e *Example) Set(key string, value any) {
	e.attrs[key] = value
}

// Text returns the utterance text.
func (e *Example) Text() string {
	text, _ := e.attrs[AttrText].(string)
	return text
}

// Intent returns the intent label and whether one is present. An absent
// intent is distinct from an empty-string intent: the latter is present
// and flagged by validation.
func (e *Example) Intent() (string, bool) {
	v, ok := e.attrs[AttrIntent]
	if !ok || v == nil {
		return "", false
	}
	intent, ok := v.(string)
	return intent, ok
}

// SetIntent sets the intent label.
func (e *Example) SetIntent(intent string) {
	e.attrs[AttrIntent] = intent
}

// WithIntent sets the intent label and returns the example, for fluent
// construction in loaders and tests.
func (e *Example) WithIntent(intent string) *Example {
	e.SetIntent(intent)
	return e
}

// Entities returns the entity spans of the example, or nil when absent.
func (e *Example) Entities() []EntitySpan {
	spans, _ := e.attrs[AttrEntities].([]EntitySpan)
	return spans
}

// SetEntities sets the entity spans.
func (e *Example) SetEntities(spans []EntitySpan) {
	e.attrs[AttrEntities] = spans
}

// WithEntities sets the entity spans and returns the example.
func (e *Example) WithEntities(spans ...EntitySpan) *Example {
	e.SetEntities(spans)
	return e
}

// Copy returns a deep copy of the example. Entity spans and nested maps
// and slices are copied recursively so the copy shares no mutable state
// with the original.
func (e *Example) Copy() *Example {
	attrs := make(map[string]any, len(e.attrs))
	for k, v := range e.attrs {
		attrs[k] = deepCopyValue(v)
	}
	return &Example{attrs: attrs}
}

// deepCopyValue copies the container shapes examples are built from.
// Scalars and unknown types are returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case EntitySpan:
		return val.Copy()
	case []EntitySpan:
		out := make([]EntitySpan, len(val))
		for i, span := range val {
			out[i] = span.Copy()
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, nested := range val {
			out[k] = deepCopyValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, nested := range val {
			out[i] = deepCopyValue(nested)
		}
		return out
	default:
		return v
	}
}

func copyExamples(examples []*Example) []*Example {
	out := make([]*Example, len(examples))
	for i, ex := range examples {
		out[i] = ex.Copy()
	}
	return out
}
