package training_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/nludata/format"
	"github.com/c360/nludata/storage/filestore"
	"github.com/c360/nludata/training"
)

type fakeSink struct {
	puts map[string][]byte
	err  error
}

func newFakeSink() *fakeSink {
	return &fakeSink{puts: make(map[string][]byte)}
}

func (f *fakeSink) Put(_ context.Context, key string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.puts[key] = data
	return nil
}

func TestPersist_WritesCanonicalJSONAndReturnsManifest(t *testing.T) {
	td := training.New(
		[]*training.Example{training.NewExample("hey").WithIntent("greet")},
		nil, nil, nil,
	)
	sink := newFakeSink()

	manifest, err := td.Persist(context.Background(), sink, format.NewJSONWriter(format.WithIndent(2)), "model-1")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"training_data": "training_data.json"}, manifest)

	data, ok := sink.puts["model-1/training_data.json"]
	require.True(t, ok, "expected a write under the supplied directory")
	assert.Contains(t, string(data), `"greet"`)
}

func TestPersist_PropagatesSinkFailure(t *testing.T) {
	td := training.New(nil, nil, nil, nil)
	sink := newFakeSink()
	sink.err = errors.New("bucket unavailable")

	manifest, err := td.Persist(context.Background(), sink, format.NewJSONWriter(), "model-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, sink.err)
	assert.Nil(t, manifest, "no partial manifest on failure")
}

func TestPersist_ThroughFilestore(t *testing.T) {
	dir := t.TempDir()
	store, err := filestore.New(dir)
	require.NoError(t, err)

	td := training.New(
		[]*training.Example{
			training.NewExample("hey").WithIntent("greet"),
			training.NewExample("hello").WithIntent("greet"),
		},
		training.EntitySynonyms{"NYC": "New York"},
		nil, nil,
	)

	manifest, err := td.Persist(context.Background(), store, format.NewJSONWriter(format.WithIndent(2)), "run-42")
	require.NoError(t, err)
	assert.Equal(t, "training_data.json", manifest["training_data"])

	stored, err := store.Get(context.Background(), "run-42/training_data.json")
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"New York"`)
}

func TestRender_DelegatesToWriter(t *testing.T) {
	td := training.New(nil, nil, nil, nil)

	out, err := td.Render(format.NewMarkdownWriter())

	require.NoError(t, err)
	assert.Empty(t, out, "empty dataset renders to empty markdown")
}
