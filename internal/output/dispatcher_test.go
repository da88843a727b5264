package output

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"pingwatch/internal/models"
)

type fakeSink struct {
	name    string
	err     error
	batches [][]models.Record
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(_ context.Context, records []models.Record) error {
	f.batches = append(f.batches, records)
	return f.err
}

func TestDispatchContinuesPastFailingSink(t *testing.T) {
	failing := &fakeSink{name: "file", err: errors.New("disk full")}
	healthy := &fakeSink{name: "hec"}

	d := NewDispatcher(zerolog.Nop(), failing, healthy)
	d.Dispatch(context.Background(), testRecords(3))

	assert.Len(t, failing.batches, 1, "failing sink was attempted")
	assert.Len(t, healthy.batches, 1, "second sink still receives the batch")
	assert.Len(t, healthy.batches[0], 3)
}

func TestDispatchSkipsEmptyBatch(t *testing.T) {
	sink := &fakeSink{name: "file"}

	d := NewDispatcher(zerolog.Nop(), sink)
	d.Dispatch(context.Background(), nil)

	assert.Empty(t, sink.batches)
}
