package training

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/c360/nludata/config"
	"github.com/c360/nludata/metric"
)

// TrainingData holds loaded intent and entity training data.
//
// A TrainingData is constructed once from already-parsed inputs (typically
// produced by a format reader), immediately normalizes and validates
// itself, and is read-only afterwards. Merge produces a brand-new instance
// instead of mutating operands, so independent goroutines each holding
// their own instances may merge without coordination. A single instance is
// not safe for concurrent mutation; the package exposes no post-construction
// mutators to keep that discipline.
type TrainingData struct {
	id uuid.UUID

	examples       []*Example
	entitySynonyms EntitySynonyms
	regexFeatures  []RegexFeature
	entityPhrases  EntityPhrases

	settings settings

	// Derived views, computed once at construction. The instance is never
	// mutated afterwards, so no invalidation is needed.
	intentExamples    []*Example
	entityExamples    []*Example
	intents           map[string]struct{}
	examplesPerIntent map[string]int
	entities          map[string]struct{}
	examplesPerEntity map[string]int

	warnings []Warning
}

// settings carries the injected collaborators through merges: merged
// datasets validate and log the same way their left operand does.
type settings struct {
	validation config.Validation
	logger     *slog.Logger
	metrics    *metric.Metrics
}

// Option configures a TrainingData at construction.
type Option func(*settings)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithValidation overrides the validation thresholds.
func WithValidation(v config.Validation) Option {
	return func(s *settings) {
		s.validation = v
	}
}

// WithMetrics enables Prometheus metrics recording.
func WithMetrics(m *metric.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// New constructs a TrainingData from four optional inputs, each defaulting
// to an empty container. Construction always succeeds given well-typed
// inputs: it normalizes intent labels (trimming surrounding whitespace),
// canonically sorts regex features by name+"+"+pattern, runs validation
// (collecting non-fatal warnings), and logs summary statistics.
func New(examples []*Example, synonyms EntitySynonyms, regexFeatures []RegexFeature,
	phrases EntityPhrases, opts ...Option) *TrainingData {

	s := settings{
		validation: config.DefaultValidation(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return newDataSet(examples, synonyms, regexFeatures, phrases, nil, s)
}

// newDataSet is the shared constructor for New and Merge. carried holds
// warnings produced before construction (synonym conflicts during merge);
// they precede the validation warnings in the collected list.
func newDataSet(examples []*Example, synonyms EntitySynonyms, regexFeatures []RegexFeature,
	phrases EntityPhrases, carried []Warning, s settings) *TrainingData {

	if examples == nil {
		examples = []*Example{}
	}
	if synonyms == nil {
		synonyms = EntitySynonyms{}
	}
	if regexFeatures == nil {
		regexFeatures = []RegexFeature{}
	}
	if phrases == nil {
		phrases = EntityPhrases{}
	}

	t := &TrainingData{
		id:             uuid.New(),
		examples:       examples,
		entitySynonyms: synonyms,
		regexFeatures:  regexFeatures,
		entityPhrases:  phrases,
		settings:       s,
	}

	t.sanitizeExamples()
	t.sortRegexFeatures()
	t.computeViews()

	t.warnings = append(carried, t.Validate()...)
	t.logWarnings()
	t.logStats()
	t.recordMetrics()

	return t
}

// sanitizeExamples trims surrounding whitespace from every present intent
// label, in place. Absent intents stay absent.
func (t *TrainingData) sanitizeExamples() {
	for _, ex := range t.examples {
		if intent, ok := ex.Intent(); ok {
			ex.SetIntent(strings.TrimSpace(intent))
		}
	}
}

// sortRegexFeatures sorts regex features lexicographically by the composite
// key name+"+"+pattern. The sort is stable: features with identical keys
// keep their original relative order. Downstream writers rely on this order
// being deterministic.
func (t *TrainingData) sortRegexFeatures() {
	sort.SliceStable(t.regexFeatures, func(i, j int) bool {
		return t.regexFeatures[i].sortKey() < t.regexFeatures[j].sortKey()
	})
}

// computeViews derives the cached groupings from the example list. Called
// once per instance; the aggregate is immutable afterwards.
func (t *TrainingData) computeViews() {
	t.intents = make(map[string]struct{})
	t.examplesPerIntent = make(map[string]int)
	t.entities = make(map[string]struct{})
	t.examplesPerEntity = make(map[string]int)

	for _, ex := range t.examples {
		if intent, ok := ex.Intent(); ok {
			t.intents[intent] = struct{}{}
			t.examplesPerIntent[intent]++
			// An empty-string intent counts as a distinct intent and is
			// flagged by validation, but its examples are not usable as
			// intent examples.
			if intent != "" {
				t.intentExamples = append(t.intentExamples, ex)
			}
		}
		if len(ex.Entities()) > 0 {
			t.entityExamples = append(t.entityExamples, ex)
		}
	}

	for _, span := range t.SortedEntities() {
		name := span.Entity()
		t.entities[name] = struct{}{}
		t.examplesPerEntity[name]++
	}
}

// ID returns the unique identifier of this dataset instance, used in log
// output to correlate merge lineage.
func (t *TrainingData) ID() uuid.UUID {
	return t.id
}

// Examples returns the example list in load order. Callers must treat the
// returned slice and its examples as read-only.
func (t *TrainingData) Examples() []*Example {
	return t.examples
}

// IntentExamples returns the subsequence of examples with a non-empty
// intent, preserving load order. Examples whose intent normalizes to ""
// are excluded here while still appearing in Intents and
// ExamplesPerIntent.
func (t *TrainingData) IntentExamples() []*Example {
	return t.intentExamples
}

// EntityExamples returns the subsequence of examples with a non-empty
// entity list, preserving load order.
func (t *TrainingData) EntityExamples() []*Example {
	return t.entityExamples
}

// Intents returns the sorted distinct intent values across examples.
// Absent intents are excluded, but an empty-string intent counts as a
// distinct (degenerate) intent and is flagged by validation.
func (t *TrainingData) Intents() []string {
	out := make([]string, 0, len(t.intents))
	for intent := range t.intents {
		out = append(out, intent)
	}
	sort.Strings(out)
	return out
}

// ExamplesPerIntent returns the example count per intent. Examples with no
// intent are not counted; examples with an empty-string intent are counted
// under "".
func (t *TrainingData) ExamplesPerIntent() map[string]int {
	out := make(map[string]int, len(t.examplesPerIntent))
	for intent, count := range t.examplesPerIntent {
		out[intent] = count
	}
	return out
}

// Entities returns the sorted distinct entity type names across all entity
// spans.
func (t *TrainingData) Entities() []string {
	out := make([]string, 0, len(t.entities))
	for entity := range t.entities {
		out = append(out, entity)
	}
	sort.Strings(out)
	return out
}

// ExamplesPerEntity returns the entity-span occurrence count per entity
// type.
func (t *TrainingData) ExamplesPerEntity() map[string]int {
	out := make(map[string]int, len(t.examplesPerEntity))
	for entity, count := range t.examplesPerEntity {
		out[entity] = count
	}
	return out
}

// EntitySynonyms returns a copy of the synonym map.
func (t *TrainingData) EntitySynonyms() EntitySynonyms {
	return t.entitySynonyms.Copy()
}

// RegexFeatures returns the regex features in canonical order. Callers
// must treat the returned slice as read-only.
func (t *TrainingData) RegexFeatures() []RegexFeature {
	return t.regexFeatures
}

// EntityPhrases returns a copy of the entity-phrase map.
func (t *TrainingData) EntityPhrases() EntityPhrases {
	return t.entityPhrases.Copy()
}

// Warnings returns the diagnostics collected at construction: merge-time
// synonym conflicts first, then the validation warnings.
func (t *TrainingData) Warnings() []Warning {
	out := make([]Warning, len(t.warnings))
	copy(out, t.warnings)
	return out
}

// SortedEntities flattens all entity spans across the entity examples into
// one sequence sorted ascending by entity type name. The sort is stable,
// preserving the original relative order of spans with equal types. Writers
// needing deterministic output must use this, not the raw examples.
func (t *TrainingData) SortedEntities() []EntitySpan {
	var spans []EntitySpan
	for _, ex := range t.entityExamples {
		spans = append(spans, ex.Entities()...)
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Entity() < spans[j].Entity()
	})
	return spans
}

// SortedIntentExamples returns the intent examples sorted ascending by
// intent label, stable for ties. Writers needing deterministic output must
// use this, not the raw examples.
func (t *TrainingData) SortedIntentExamples() []*Example {
	out := make([]*Example, len(t.intentExamples))
	copy(out, t.intentExamples)
	sort.SliceStable(out, func(i, j int) bool {
		iIntent, _ := out[i].Intent()
		jIntent, _ := out[j].Intent()
		return iIntent < jIntent
	})
	return out
}

// logWarnings emits every collected warning on the warning level.
func (t *TrainingData) logWarnings() {
	for _, w := range t.warnings {
		t.settings.logger.Warn(w.String(),
			"dataset", t.id,
			"kind", string(w.Kind),
			"subject", w.Subject,
		)
	}
}

// logStats logs summary statistics. Observability output only; it never
// affects behavior.
func (t *TrainingData) logStats() {
	t.settings.logger.Info("training data stats",
		"dataset", t.id,
		"intent_examples", len(t.intentExamples),
		"distinct_intents", len(t.intents),
		"intents", t.Intents(),
		"entity_examples", len(t.entityExamples),
		"distinct_entities", len(t.entities),
		"entities", t.Entities(),
	)
}

func (t *TrainingData) recordMetrics() {
	m := t.settings.metrics
	if m == nil {
		return
	}
	m.DatasetsConstructed.Inc()
	m.ExamplesIngested.Add(float64(len(t.examples)))
	for _, w := range t.warnings {
		m.ValidationWarnings.WithLabelValues(string(w.Kind)).Inc()
	}
}
