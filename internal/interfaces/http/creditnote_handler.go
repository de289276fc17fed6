package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
	"github.com/Thaworapong/credit-note/internal/application/dto"
	"github.com/Thaworapong/credit-note/internal/domain"
)

// CreditNoteHandler serves the form collaborator: it receives plain field
// values, invokes recompute on edit and export on explicit user action.
type CreditNoteHandler struct {
	exportUC *creditnote.ExportUseCase
	pdfUC    *creditnote.PDFUseCase
}

// NewCreditNoteHandler builds the handler.
func NewCreditNoteHandler(exportUC *creditnote.ExportUseCase, pdfUC *creditnote.PDFUseCase) *CreditNoteHandler {
	return &CreditNoteHandler{exportUC: exportUC, pdfUC: pdfUC}
}

// NextNumber returns the preview document number for today.
// GET /api/credit-notes/next-number
func (h *CreditNoteHandler) NextNumber(c *fiber.Ctx) error {
	number, err := h.exportUC.NextNumber()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{DocumentNumber: number})
}

// Recompute re-derives all totals from the submitted rows.
// POST /api/credit-notes/recompute
func (h *CreditNoteHandler) Recompute(c *fiber.Ctx) error {
	var in dto.RecomputeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	result := creditnote.Recompute(creditnote.ItemsFromDTO(in.Items), in.ReferenceInvoiceAmount)
	return c.JSON(creditnote.CalculationToDTO(result))
}

// Export runs the full export flow and commits the audit record.
// POST /api/credit-notes/export
func (h *CreditNoteHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.exportUC.Export(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// PDF renders the submitted document as a PDF draft; nothing is committed.
// POST /api/credit-notes/pdf
func (h *CreditNoteHandler) PDF(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	pdfBytes, err := h.pdfUC.GeneratePDF(in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// History lists committed documents, optionally for one date.
// GET /api/credit-notes?date=YYYY-MM-DD
func (h *CreditNoteHandler) History(c *fiber.Ctx) error {
	records, err := h.exportUC.History(c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(records)
}

// writeError maps domain errors onto HTTP responses.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrTemplateNotFound):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TEMPLATE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrLogCorrupt):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LOG_CORRUPT", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistence):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
}
