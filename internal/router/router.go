// Package router turns a document record into a destination path and
// moves the file there. Filing names are derived from the record:
// invoices file as YYMMDD_<invoiceNo>_<supplier>.pdf under the
// recipient's invoice folder, correspondence as YYMMDD_<supplier>.pdf
// under the recipient's correspondence folder and year. Anything the
// record cannot name completely is parked in the unknown folder under a
// timestamped copy of its original name.
package router

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/meberl/docsort/constants"
	"github.com/meberl/docsort/internal/common"
	"github.com/meberl/docsort/internal/dates"
	"github.com/meberl/docsort/internal/fields"
	"github.com/meberl/docsort/internal/strutil"
)

type Router struct {
	routing common.RoutingFolders
	logger  *slog.Logger
	now     func() time.Time
}

func NewRouter(routing common.RoutingFolders, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{routing: routing, logger: logger, now: time.Now}
}

// Destination computes where sourcePath should land given its record.
// It never touches the filesystem.
func (r *Router) Destination(sourcePath string, rec fields.Record) string {
	base := filepath.Base(sourcePath)

	when, dateOK := parseCanonical(rec.Date)
	if !dateOK || rec.Supplier == "" || rec.Recipient == constants.Unknown {
		return r.unknownDestination(base)
	}

	stamp := when.Format("060102")
	if rec.IsInvoice {
		folder, ok := r.routing.Invoice[string(rec.Recipient)]
		if !ok || rec.InvoiceNumber == "" {
			return r.unknownDestination(base)
		}
		return filepath.Join(folder, fmt.Sprintf("%s_%s_%s.pdf", stamp, rec.InvoiceNumber, rec.Supplier))
	}

	folder, ok := r.routing.Correspondence[string(rec.Recipient)]
	if !ok {
		return r.unknownDestination(base)
	}
	return filepath.Join(folder, when.Format("2006"), fmt.Sprintf("%s_%s.pdf", stamp, rec.Supplier))
}

// Unknown returns the parking destination for a document that could not
// be processed at all.
func (r *Router) Unknown(sourcePath string) string {
	return r.unknownDestination(filepath.Base(sourcePath))
}

func (r *Router) unknownDestination(base string) string {
	return filepath.Join(r.routing.Unknown, strutil.AddTimestampToFilename(base, r.now()))
}

// Move relocates src to dst, creating destination directories as needed.
// An occupied destination diverts to a timestamped sibling instead of
// overwriting.
func (r *Router) Move(src, dst string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create destination dir: %w", err)
	}
	if _, err := os.Stat(dst); err == nil {
		diverted := filepath.Join(filepath.Dir(dst), strutil.AddTimestampToFilename(filepath.Base(dst), r.now()))
		r.logger.Warn("destination occupied, diverting", "dst", dst, "diverted", diverted)
		dst = diverted
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move %s: %w", src, err)
	}
	r.logger.Info("document filed", "src", src, "dst", dst)
	return dst, nil
}

// Route computes the destination and performs the move.
func (r *Router) Route(sourcePath string, rec fields.Record) (string, error) {
	return r.Move(sourcePath, r.Destination(sourcePath, rec))
}

func parseCanonical(date string) (time.Time, bool) {
	if date == "" || date == dates.Unknown {
		return time.Time{}, false
	}
	t, err := time.Parse(dates.CanonicalLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
