package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Thaworapong/credit-note/internal/application/creditnote"
)

// RouterDeps holds the use cases the router wires into handlers.
type RouterDeps struct {
	ExportUC *creditnote.ExportUseCase
	PDFUC    *creditnote.PDFUseCase
}

// Router registers the API routes. The tool is single-operator and local, so
// there is no auth layer.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	notes := api.Group("/credit-notes")
	handler := NewCreditNoteHandler(deps.ExportUC, deps.PDFUC)
	notes.Get("/", handler.History)
	notes.Get("/next-number", handler.NextNumber)
	notes.Post("/recompute", handler.Recompute)
	notes.Post("/export", handler.Export)
	notes.Post("/pdf", handler.PDF)
}
