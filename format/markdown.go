package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360/nludata/training"
)

// MarkdownWriter serializes a TrainingData into the markdown training
// format: "## intent:" sections listing utterances (entity spans annotated
// inline as [surface](type)), "## synonym:" sections grouping surface
// variants by canonical value, "## regex:" sections, and "## phrases:"
// sections.
//
// Only intent examples appear in markdown; an example carrying entities
// but no intent has no markdown representation.
type MarkdownWriter struct{}

// NewMarkdownWriter creates a markdown writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

var _ training.Writer = (*MarkdownWriter)(nil)

// Dump implements training.Writer. Output is deterministic: sections and
// their items follow the aggregate's canonical orderings.
func (w *MarkdownWriter) Dump(td *training.TrainingData) (string, error) {
	var b strings.Builder

	w.writeIntentSections(&b, td)
	w.writeSynonymSections(&b, td)
	w.writeRegexSections(&b, td)
	w.writePhraseSections(&b, td)

	return b.String(), nil
}

func (w *MarkdownWriter) writeIntentSections(b *strings.Builder, td *training.TrainingData) {
	current := ""
	open := false
	for _, ex := range td.SortedIntentExamples() {
		intent, _ := ex.Intent()
		if !open || intent != current {
			if open {
				b.WriteString("\n")
			}
			fmt.Fprintf(b, "## intent:%s\n", intent)
			current = intent
			open = true
		}
		fmt.Fprintf(b, "- %s\n", annotateEntities(ex))
	}
	if open {
		b.WriteString("\n")
	}
}

func (w *MarkdownWriter) writeSynonymSections(b *strings.Builder, td *training.TrainingData) {
	byCanonical := make(map[string][]string)
	for surface, canonical := range td.EntitySynonyms() {
		byCanonical[canonical] = append(byCanonical[canonical], surface)
	}

	canonicals := make([]string, 0, len(byCanonical))
	for canonical := range byCanonical {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		fmt.Fprintf(b, "## synonym:%s\n", canonical)
		surfaces := byCanonical[canonical]
		sort.Strings(surfaces)
		for _, surface := range surfaces {
			fmt.Fprintf(b, "- %s\n", surface)
		}
		b.WriteString("\n")
	}
}

func (w *MarkdownWriter) writeRegexSections(b *strings.Builder, td *training.TrainingData) {
	for _, feature := range td.RegexFeatures() {
		fmt.Fprintf(b, "## regex:%s\n- %s\n\n", feature.Name, feature.Pattern)
	}
}

func (w *MarkdownWriter) writePhraseSections(b *strings.Builder, td *training.TrainingData) {
	phrases := td.EntityPhrases()

	entities := make([]string, 0, len(phrases))
	for entity := range phrases {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	for _, entity := range entities {
		fmt.Fprintf(b, "## phrases:%s\n", entity)
		for _, phrase := range phrases[entity].Sorted() {
			fmt.Fprintf(b, "- %s\n", phrase)
		}
		b.WriteString("\n")
	}
}

// annotateEntities renders the example text with inline [surface](type)
// annotations. Spans without usable start/end positions are left out of
// the annotation.
func annotateEntities(ex *training.Example) string {
	text := ex.Text()
	spans := ex.Entities()
	if len(spans) == 0 {
		return text
	}

	// Rewrite right-to-left so earlier offsets stay valid.
	ordered := make([]training.EntitySpan, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, _ := spanInt(ordered[i], "start")
		sj, _ := spanInt(ordered[j], "start")
		return si > sj
	})

	for _, span := range ordered {
		start, okStart := spanInt(span, "start")
		end, okEnd := spanInt(span, "end")
		if !okStart || !okEnd || start < 0 || end > len(text) || start >= end {
			continue
		}
		text = text[:start] + fmt.Sprintf("[%s](%s)", text[start:end], span.Entity()) + text[end:]
	}
	return text
}

// spanInt reads a positional field that may arrive as an int from code or
// a float64 from decoded JSON.
func spanInt(span training.EntitySpan, key string) (int, bool) {
	switch v := span[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
