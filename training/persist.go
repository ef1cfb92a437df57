package training

import (
	"context"
	"fmt"
	"path"
)

// TrainingDataFile is the fixed relative filename training data is
// persisted under. The persist manifest refers to it so a caller can
// reconstruct the on-disk layout.
const TrainingDataFile = "training_data.json"

// Writer serializes a finalized TrainingData. Implementations live in the
// format package; the aggregate only guarantees them a stable, fully
// validated, fully sorted view through SortedIntentExamples,
// SortedEntities, RegexFeatures and the phrase sets' Sorted method.
type Writer interface {
	Dump(td *TrainingData) (string, error)
}

// Sink writes serialized training data to a named location. The aggregate
// does not know the storage mechanism; implementations live in the storage
// package. Keys use "/" separators.
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Render serializes the dataset through the given writer. It exists so
// callers keep a single entry point whether they want the canonical JSON
// or the Markdown form.
func (t *TrainingData) Render(w Writer) (string, error) {
	return w.Dump(t)
}

// Persist writes the canonical serialized form under dirName via the sink
// and returns a manifest mapping "training_data" to the relative filename.
// The directory is supplied (and created, where that applies) by the
// caller. Sink failures propagate; there is no retry and no partial
// manifest.
func (t *TrainingData) Persist(ctx context.Context, sink Sink, w Writer, dirName string) (map[string]string, error) {
	text, err := t.Render(w)
	if err != nil {
		return nil, fmt.Errorf("training.Persist: serialize failed: %w", err)
	}

	key := path.Join(dirName, TrainingDataFile)
	if err := sink.Put(ctx, key, []byte(text)); err != nil {
		return nil, fmt.Errorf("training.Persist: write failed: %w", err)
	}

	return map[string]string{"training_data": TrainingDataFile}, nil
}
