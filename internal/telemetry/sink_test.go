package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocStore struct {
	inserted []any
	err      error
}

func (f *fakeDocStore) InsertSnapshot(ctx context.Context, collection string, doc any) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, doc)
	return nil
}

func (f *fakeDocStore) LatestSnapshots(ctx context.Context, collection string, limit int) ([]map[string]any, error) {
	return nil, nil
}

func TestSinkInsertsValidSnapshot(t *testing.T) {
	store := &fakeDocStore{}
	sink := NewSink(store)

	body := []byte(`{"company_name":"Acme","pollution_data":{}}`)
	err := sink.HandleMessage(context.Background(), body)
	require.NoError(t, err)
	assert.Len(t, store.inserted, 1)
}

func TestSinkAcksOnUnparseableBody(t *testing.T) {
	store := &fakeDocStore{}
	sink := NewSink(store)

	err := sink.HandleMessage(context.Background(), []byte("not json"))
	assert.NoError(t, err)
	assert.Empty(t, store.inserted)
}
