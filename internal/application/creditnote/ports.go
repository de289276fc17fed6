package creditnote

import "github.com/Thaworapong/credit-note/internal/domain/entity"

// WorkbookExporter writes a populated credit note into the spreadsheet
// template and persists the result at outputPath. Implementations must leave
// no partial output behind on failure.
type WorkbookExporter interface {
	Export(note *entity.CreditNote, outputPath string) error
}

// DocumentPDFRenderer renders the graphic representation of a credit note.
type DocumentPDFRenderer interface {
	Render(note *entity.CreditNote) ([]byte, error)
}
