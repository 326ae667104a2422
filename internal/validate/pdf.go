package validate

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFOpener implements Opener over github.com/ledongthuc/pdf.
type PDFOpener struct{}

func NewPDFOpener() *PDFOpener {
	return &PDFOpener{}
}

type pdfDocument struct {
	reader *pdf.Reader
}

func (d *pdfDocument) PageCount() int {
	return d.reader.NumPage()
}

// Open parses the document structure without extracting content. The
// parser panics on some malformed inputs, so the panic is converted into
// an ordinary error here to keep the port contract.
func (o *PDFOpener) Open(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf: %w", err)
	}
	return &pdfDocument{reader: reader}, nil
}
