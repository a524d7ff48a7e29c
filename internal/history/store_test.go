package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meberl/docsort/constants"
	"github.com/meberl/docsort/internal/fields"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	runID := uuid.New()
	otherRun := uuid.New()

	first := Document{
		RunID:       runID,
		SourcePath:  "/scans/inbox/a.pdf",
		Destination: "/filing/medmind/invoices/250331_RE-1_Telekom.pdf",
		Record: fields.Record{
			IsInvoice:     true,
			Reference:     "654321",
			Date:          "31.03.2025",
			InvoiceNumber: "RE-1",
			Supplier:      "Telekom",
			Recipient:     constants.Medmind,
		},
		ProcessedAt: time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC),
	}
	id, err := store.RecordDocument(ctx, first)
	require.NoError(t, err)
	assert.Positive(t, id)

	second := Document{
		RunID:      runID,
		SourcePath: "/scans/inbox/b.pdf",
		Err:        "render failed",
	}
	_, err = store.RecordDocument(ctx, second)
	require.NoError(t, err)

	_, err = store.RecordDocument(ctx, Document{RunID: otherRun, SourcePath: "/scans/inbox/c.pdf"})
	require.NoError(t, err)

	docs, err := store.ListRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, first.SourcePath, docs[0].SourcePath)
	assert.Equal(t, first.Destination, docs[0].Destination)
	assert.Equal(t, first.Record, docs[0].Record)
	assert.Equal(t, runID, docs[0].RunID)
	assert.True(t, first.ProcessedAt.Equal(docs[0].ProcessedAt))

	assert.Equal(t, "render failed", docs[1].Err)
	assert.False(t, docs[1].Record.IsInvoice)
	// RecordDocument stamps documents that carry no timestamp.
	assert.False(t, docs[1].ProcessedAt.IsZero())
}

func TestListRunEmpty(t *testing.T) {
	store, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	docs, err := store.ListRun(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
