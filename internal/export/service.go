package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/meberl/docsort/internal/history"
)

// Service produces XLSX bytes summarizing a processing run.
type Service struct {
	store  *history.Store
	logger *slog.Logger
}

func NewService(store *history.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportRunXLSX returns an XLSX workbook (as bytes) listing every document
// of the given run with its extracted fields and destination.
func (s *Service) ExportRunXLSX(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	start := time.Now()

	docs, err := s.store.ListRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on Documents.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Source",
		"Destination",
		"Invoice",
		"Date",
		"Invoice Number",
		"Supplier",
		"Recipient",
		"Reference",
		"Error",
		"Processed At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, d := range docs {
		row := rowIdx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, d.SourcePath)
		write(2, d.Destination)
		write(3, d.Record.IsInvoice)
		write(4, d.Record.Date)
		write(5, d.Record.InvoiceNumber)
		write(6, d.Record.Supplier)
		write(7, string(d.Record.Recipient))
		write(8, d.Record.Reference)
		write(9, d.Err)
		if !d.ProcessedAt.IsZero() {
			write(10, d.ProcessedAt.Format(time.RFC3339))
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 50)
	_ = f.SetColWidth(sheet, "C", "C", 8)
	_ = f.SetColWidth(sheet, "D", "E", 16)
	_ = f.SetColWidth(sheet, "F", "G", 24)
	_ = f.SetColWidth(sheet, "H", "H", 12)
	_ = f.SetColWidth(sheet, "I", "I", 40)
	_ = f.SetColWidth(sheet, "J", "J", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", runID.String(),
		"rows", len(docs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
