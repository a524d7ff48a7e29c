package router

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meberl/docsort/constants"
	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/fields"
)

func testRouter() *Router {
	r := NewRouter(common.RoutingFolders{
		Scan:    "/scans/inbox",
		Unknown: "/scans/unknown",
		Invoice: map[string]string{
			"Medmind": "/filing/medmind/invoices",
		},
		Correspondence: map[string]string{
			"Private": "/filing/private/mail",
		},
	}, nil)
	r.now = func() time.Time { return time.Date(2025, 3, 31, 12, 0, 5, 0, time.UTC) }
	return r
}

func TestDestinationInvoice(t *testing.T) {
	r := testRouter()

	rec := fields.Record{
		IsInvoice:     true,
		Date:          "31.03.2025",
		InvoiceNumber: "RE-2025-001",
		Supplier:      "Telekom",
		Recipient:     constants.Medmind,
	}
	got := r.Destination("/scans/inbox/scan001.pdf", rec)
	assert.Equal(t, filepath.Join("/filing/medmind/invoices", "250331_RE-2025-001_Telekom.pdf"), got)
}

func TestDestinationCorrespondenceGetsYearFolder(t *testing.T) {
	r := testRouter()

	rec := fields.Record{
		Date:      "05.05.2021",
		Supplier:  "Finanzamt_Muenchen",
		Recipient: constants.Private,
	}
	got := r.Destination("/scans/inbox/scan002.pdf", rec)
	assert.Equal(t, filepath.Join("/filing/private/mail", "2021", "210505_Finanzamt_Muenchen.pdf"), got)
}

func TestDestinationIncompleteRecordsGoToUnknown(t *testing.T) {
	r := testRouter()

	complete := fields.Record{
		IsInvoice:     true,
		Date:          "31.03.2025",
		InvoiceNumber: "RE-1",
		Supplier:      "Telekom",
		Recipient:     constants.Medmind,
	}

	tests := []struct {
		name   string
		mutate func(*fields.Record)
	}{
		{"unparseable date", func(r *fields.Record) { r.Date = dates.Unknown }},
		{"no supplier", func(r *fields.Record) { r.Supplier = "" }},
		{"no recipient", func(r *fields.Record) { r.Recipient = constants.Unknown }},
		{"invoice without number", func(r *fields.Record) { r.InvoiceNumber = "" }},
		{"recipient without invoice folder", func(r *fields.Record) { r.Recipient = constants.Immo }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := complete
			tt.mutate(&rec)

			got := r.Destination("/scans/inbox/scan003.pdf", rec)
			assert.Equal(t, "/scans/unknown", filepath.Dir(got))
			assert.Equal(t, "scan003_20250331_120005.pdf", filepath.Base(got))
		})
	}
}

func TestMoveCreatesDirectories(t *testing.T) {
	r := testRouter()
	tmp := t.TempDir()

	src := filepath.Join(tmp, "in.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0o644))

	dst := filepath.Join(tmp, "filing", "2021", "out.pdf")
	moved, err := r.Move(src, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, moved)

	_, err = os.Stat(dst)
	assert.NoError(t, err)
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestMoveDivertsOnCollision(t *testing.T) {
	r := testRouter()
	tmp := t.TempDir()

	dst := filepath.Join(tmp, "out.pdf")
	require.NoError(t, os.WriteFile(dst, []byte("already here"), 0o644))

	src := filepath.Join(tmp, "in.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0o644))

	moved, err := r.Move(src, dst)
	require.NoError(t, err)
	assert.NotEqual(t, dst, moved)
	assert.Equal(t, filepath.Join(tmp, "out_20250331_120005.pdf"), moved)

	kept, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(kept))
}
