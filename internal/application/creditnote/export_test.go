package creditnote_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
	"github.com/Thaworapong/credit-note/internal/application/dto"
	"github.com/Thaworapong/credit-note/internal/domain"
	"github.com/Thaworapong/credit-note/internal/domain/entity"
	"github.com/Thaworapong/credit-note/pkg/logger"
)

// ── test doubles ─────────────────────────────────────────────────────────────

// memStore is an in-memory SequenceLogRepository; Load returns a copy so the
// use case's snapshot mutation cannot reach the store's state.
type memStore struct {
	log       entity.SequenceLog
	loadErr   error
	appendErr error
	appended  []entity.DocumentRecord
}

func newMemStore() *memStore {
	return &memStore{log: entity.SequenceLog{}}
}

func (s *memStore) Load() (entity.SequenceLog, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := entity.SequenceLog{}
	for k, v := range s.log {
		out[k] = append([]entity.DocumentRecord(nil), v...)
	}
	return out, nil
}

func (s *memStore) Append(r entity.DocumentRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.log[r.IssueDate] = append(s.log[r.IssueDate], r)
	s.appended = append(s.appended, r)
	return nil
}

// fileExporter writes a placeholder file where the real exporter would save
// the workbook, so compensating cleanup is observable.
type fileExporter struct {
	err    error
	called int
}

func (e *fileExporter) Export(_ *entity.CreditNote, outputPath string) error {
	e.called++
	if e.err != nil {
		return e.err
	}
	return os.WriteFile(outputPath, []byte("workbook"), 0o644)
}

// ── fixture ──────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, time.January, 15, 14, 30, 5, 0, time.UTC)

func buildUseCase(t *testing.T, store *memStore, exporter *fileExporter, templatePath string) (*creditnote.ExportUseCase, string) {
	t.Helper()
	outputDir := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.MkdirAll(outputDir, 0o755))

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := creditnote.NewExportUseCase(store, exporter, templatePath, outputDir, log,
		creditnote.WithClock(func() time.Time { return fixedNow }))
	return uc, outputDir
}

func newTestUseCase(t *testing.T, store *memStore, exporter *fileExporter) (*creditnote.ExportUseCase, string) {
	t.Helper()
	templatePath := filepath.Join(t.TempDir(), "credit_note_template.xlsx")
	require.NoError(t, os.WriteFile(templatePath, []byte("template"), 0o644))
	return buildUseCase(t, store, exporter, templatePath)
}

func exportRequest() dto.ExportRequest {
	return dto.ExportRequest{
		Items: []dto.LineItemRequest{
			{Description: "Widget", Quantity: "2", UnitPrice: "50.00"},
			{Description: "", Quantity: "5", UnitPrice: "999.00"},
			{Description: "Gadget", Quantity: "1", UnitPrice: "25.00"},
		},
		ReferenceInvoiceAmount: "200.00",
		IssueDate:              "2025-01-15",
		InvoiceDate:            "2025-01-10",
		ReferenceInvoice:       "INV-7701",
		CustomerID:             "C-0042",
		CustomerName:           "บริษัท ตัวอย่าง จำกัด",
		Reason:                 "returned goods",
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

// A successful export writes the workbook, commits one record, and advances
// the preview number.
func TestExport_CommitsFileAndRecord(t *testing.T) {
	store := newMemStore()
	exporter := &fileExporter{}
	uc, outputDir := newTestUseCase(t, store, exporter)

	resp, err := uc.Export(exportRequest())
	require.NoError(t, err)

	assert.Equal(t, "CNT256801-001", resp.DocumentNumber)
	assert.Equal(t, "CNT256801-002", resp.NextNumber)
	assert.Equal(t, filepath.Join(outputDir, "CNT256801-001.xlsx"), resp.OutputPath)
	assert.FileExists(t, resp.OutputPath)

	require.Len(t, store.appended, 1)
	rec := store.appended[0]
	assert.Equal(t, "CNT256801-001", rec.DocumentNumber)
	assert.Equal(t, "2025-01-15", rec.IssueDate)
	assert.Equal(t, "14:30:05", rec.IssueTime)
	assert.Equal(t, "INV-7701", rec.ReferenceInvoice)
	assert.Equal(t, "80.25", rec.TotalWithVAT)
	assert.NotEmpty(t, rec.ID)

	assert.Equal(t, "80.25", resp.Result.TotalWithVAT)
	assert.Equal(t, "แปดสิบบาทยี่สิบห้าสตางค์", resp.Result.TotalWithVATThaiText)
}

// Two exports on the same day take consecutive numbers.
func TestExport_SequentialNumbersSameDay(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUseCase(t, store, &fileExporter{})

	first, err := uc.Export(exportRequest())
	require.NoError(t, err)
	second, err := uc.Export(exportRequest())
	require.NoError(t, err)

	assert.Equal(t, "CNT256801-001", first.DocumentNumber)
	assert.Equal(t, "CNT256801-002", second.DocumentNumber)
}

// A missing template aborts before any side effect: the exporter is never
// invoked, nothing is written, nothing is logged.
func TestExport_MissingTemplate(t *testing.T) {
	store := newMemStore()
	exporter := &fileExporter{}
	uc, outputDir := buildUseCase(t, store, exporter, filepath.Join(t.TempDir(), "missing.xlsx"))

	_, err := uc.Export(exportRequest())

	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	assert.Zero(t, exporter.called)
	assert.Empty(t, store.appended)
	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

// An exporter failure leaves the log untouched so the operator can retry
// with the same number.
func TestExport_ExporterFailureDoesNotAdvanceNumber(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUseCase(t, store, &fileExporter{err: errors.New("cell write failed")})

	_, err := uc.Export(exportRequest())
	require.Error(t, err)
	assert.Empty(t, store.appended)

	next, err := uc.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, "CNT256801-001", next)
}

// If the log append fails after the workbook was saved, the workbook is
// removed again: the file and the log never diverge.
func TestExport_AppendFailureRemovesWorkbook(t *testing.T) {
	store := newMemStore()
	store.appendErr = domain.ErrPersistence
	uc, outputDir := newTestUseCase(t, store, &fileExporter{})

	_, err := uc.Export(exportRequest())

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NoFileExists(t, filepath.Join(outputDir, "CNT256801-001.xlsx"))
}

// An unparsable date is operator input worth surfacing, unlike numeric text.
func TestExport_InvalidIssueDate(t *testing.T) {
	uc, _ := newTestUseCase(t, newMemStore(), &fileExporter{})

	in := exportRequest()
	in.IssueDate = "15/01/2025"
	_, err := uc.Export(in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// NextNumber is re-derived from the store on every call.
func TestNextNumber_RecomputedFromStore(t *testing.T) {
	store := newMemStore()
	uc, _ := newTestUseCase(t, store, &fileExporter{})

	first, err := uc.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, "CNT256801-001", first)

	store.log["2025-01-15"] = append(store.log["2025-01-15"], entity.DocumentRecord{IssueDate: "2025-01-15"})

	second, err := uc.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, "CNT256801-002", second)
}

func TestNextNumber_PropagatesCorruptLog(t *testing.T) {
	store := newMemStore()
	store.loadErr = domain.ErrLogCorrupt
	uc, _ := newTestUseCase(t, store, &fileExporter{})

	_, err := uc.NextNumber()
	assert.ErrorIs(t, err, domain.ErrLogCorrupt)
}

// History flattens all buckets in date order, or filters to one date.
func TestHistory(t *testing.T) {
	store := newMemStore()
	store.log["2025-01-14"] = []entity.DocumentRecord{{DocumentNumber: "CNT256801-001", IssueDate: "2025-01-14"}}
	store.log["2025-01-15"] = []entity.DocumentRecord{
		{DocumentNumber: "CNT256801-001", IssueDate: "2025-01-15"},
		{DocumentNumber: "CNT256801-002", IssueDate: "2025-01-15"},
	}
	uc, _ := newTestUseCase(t, store, &fileExporter{})

	all, err := uc.History("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-01-14", all[0].IssueDate)

	day, err := uc.History("2025-01-15")
	require.NoError(t, err)
	assert.Len(t, day, 2)
}
