// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package margin

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// Keep pdfcpu from creating a configuration directory in the user's home.
	api.DisableConfigDir()
}

// Document is the page-level PDF capability the transform relies on. Pages
// are numbered from 1.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// MediaBox returns the effective (possibly inherited) media box of a page.
	MediaBox(pageNr int) (Box, error)

	// SetPageBox replaces the media box and crop box of a page.
	SetPageBox(pageNr int, b Box) error

	// Write serializes the document.
	Write(w io.Writer) error
}

// PDFDocument is a Document backed by a pdfcpu context.
type PDFDocument struct {
	ctx *model.Context
}

// OpenPDF parses a PDF from rs. When strict is false pdfcpu's relaxed
// validation is used, which accepts many slightly malformed files.
func OpenPDF(rs io.ReadSeeker, strict bool) (*PDFDocument, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if strict {
		conf.ValidationMode = model.ValidationStrict
	}

	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}
	return &PDFDocument{ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *PDFDocument) PageCount() int {
	return d.ctx.PageCount
}

// MediaBox returns the media box of page pageNr, following inheritance
// through the page tree.
func (d *PDFDocument) MediaBox(pageNr int) (Box, error) {
	_, _, inherited, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return Box{}, fmt.Errorf("reading page %d: %w", pageNr, err)
	}
	if inherited == nil || inherited.MediaBox == nil {
		return Box{}, fmt.Errorf("page %d has no MediaBox", pageNr)
	}
	r := inherited.MediaBox
	return Box{LLX: r.LL.X, LLY: r.LL.Y, URX: r.UR.X, URY: r.UR.Y}, nil
}

// SetPageBox writes b as the page's own MediaBox and CropBox, overriding
// any inherited values.
func (d *PDFDocument) SetPageBox(pageNr int, b Box) error {
	pageDict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return fmt.Errorf("reading page %d: %w", pageNr, err)
	}
	if pageDict == nil {
		return fmt.Errorf("page %d not found", pageNr)
	}
	pageDict["MediaBox"] = pdftypes.NewNumberArray(b.LLX, b.LLY, b.URX, b.URY)
	pageDict["CropBox"] = pdftypes.NewNumberArray(b.LLX, b.LLY, b.URX, b.URY)
	return nil
}

// Write serializes the modified document to w.
func (d *PDFDocument) Write(w io.Writer) error {
	if err := api.WriteContext(d.ctx, w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}
