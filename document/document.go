// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package document assembles complete PDF files.
//
// A [Document] holds an ordered list of pages, the resources used on these
// pages, and document-level structures like bookmarks, form fields and
// file attachments.  Nothing is written until [Document.Generate] is
// called.  Generate first reserves an object number for every object of
// the output file, and then emits all objects in ascending order.
//
// A Document is not safe for concurrent use.
package document

import (
	"crypto/rand"
	"io"
	"math"
	"time"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/crypt"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/registry"
	"seehuhn.de/go/pdfgen/shading"
)

// Compression controls the deflate compression of content streams, fonts,
// attachments and metadata.
type Compression struct {
	Enabled bool
	Level   int // 0 (none) to 9 (best)
}

// Options contains settings for a new document.
// The zero value, and a nil pointer, select the defaults.
type Options struct {
	// PageSize is the default size for [Document.AddDefaultPage].
	// The default is A4.
	PageSize *rect.Rect

	// Version is the PDF version of the output.  The default is PDF 1.7.
	Version pdf.Version

	// ID is the file identifier written to the trailer.  If this is
	// empty, a random 16-byte identifier is used.
	ID []byte

	// Info is the document information dictionary.
	Info *pdf.Info

	// Compression defaults to deflate compression at level 6.
	Compression *Compression

	// Logger receives debug messages during [Document.Generate].
	// By default, nothing is logged.
	Logger logrus.FieldLogger

	// PDFA requests PDF/A style output: an XMP metadata stream and an
	// sRGB output intent are included.  Encryption is not allowed.
	PDFA bool

	// PageLayout and PageMode are stored in the document catalog, for
	// example "TwoColumnLeft" and "UseOutlines".
	PageLayout pdf.Name
	PageMode   pdf.Name

	// Now, if set, is used instead of time.Now for the creation date.
	Now func() time.Time
}

// Document is a PDF document under construction.
type Document struct {
	log logrus.FieldLogger

	pageSize    rect.Rect
	version     pdf.Version
	id          []byte
	info        pdf.Info
	compression Compression
	pdfa        bool
	pageLayout  pdf.Name
	pageMode    pdf.Name

	pages   []*Page
	current int

	fonts       *registry.Registry[*font.Font]
	images      *registry.Registry[*image.Image]
	gradients   *registry.Registry[shading.Gradient]
	patterns    *registry.Registry[*TilingPattern]
	layers      *registry.Registry[*Layer]
	gstates     *registry.Registry[GState]
	attachments *registry.Registry[*Attachment]
	watermarks  *registry.Registry[*watermarkForm]

	templates  []*Template
	fields     []*Field
	outline    []*Bookmark
	javaScript string

	encryption *crypt.Config
	handler    *crypt.Handler
}

// New creates an empty document.  Use [Document.AddPage] or
// [Document.AddDefaultPage] to add pages.
func New(opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	doc := &Document{
		pageSize:    *A4,
		version:     pdf.V1_7,
		compression: Compression{Enabled: true, Level: 6},
		pdfa:        opt.PDFA,
		pageLayout:  opt.PageLayout,
		pageMode:    opt.PageMode,

		fonts:       registry.New[*font.Font](),
		images:      registry.New[*image.Image](),
		gradients:   registry.New[shading.Gradient](),
		patterns:    registry.New[*TilingPattern](),
		layers:      registry.New[*Layer](),
		gstates:     registry.New[GState](),
		attachments: registry.New[*Attachment](),
		watermarks:  registry.New[*watermarkForm](),
	}

	if opt.PageSize != nil {
		w, h := opt.PageSize.Dx(), opt.PageSize.Dy()
		if !validSize(w, h) {
			return nil, argError("New", "invalid page size %gx%g", w, h)
		}
		doc.pageSize = *opt.PageSize
	}
	if opt.Version != 0 {
		if _, err := opt.Version.ToString(); err != nil {
			return nil, argError("New", "%s", err)
		}
		doc.version = opt.Version
	}
	if opt.Compression != nil {
		if opt.Compression.Level < 0 || opt.Compression.Level > 9 {
			return nil, argError("New", "compression level %d not in 0..9", opt.Compression.Level)
		}
		doc.compression = *opt.Compression
	}

	doc.log = opt.Logger
	if doc.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		doc.log = l
	}

	if len(opt.ID) > 0 {
		doc.id = append([]byte(nil), opt.ID...)
	} else {
		doc.id = make([]byte, 16)
		_, err := rand.Read(doc.id)
		if err != nil {
			return nil, err
		}
	}

	if opt.Info != nil {
		doc.info = *opt.Info
	}
	if doc.info.Producer == "" {
		doc.info.Producer = "seehuhn.de/go/pdfgen"
	}
	if doc.info.CreationDate.IsZero() {
		now := time.Now
		if opt.Now != nil {
			now = opt.Now
		}
		doc.info.CreationDate = now()
	}

	return doc, nil
}

func validSize(w, h float64) bool {
	return w > 0 && h > 0 && !math.IsInf(w, 0) && !math.IsInf(h, 0)
}

// Version returns the PDF version of the output.
func (doc *Document) Version() pdf.Version {
	return doc.version
}

// SetInfo replaces the document information dictionary.
func (doc *Document) SetInfo(info *pdf.Info) {
	doc.info = *info
}

// SetEncryption enables the standard security handler.  If cfg is nil,
// encryption is disabled.  Keys are derived during [Document.Generate].
func (doc *Document) SetEncryption(cfg *crypt.Config) error {
	if cfg != nil && doc.pdfa {
		return &ArgumentError{Op: "SetEncryption", Reason: errEncryptPDFA.Error()}
	}
	if cfg != nil {
		c := *cfg
		cfg = &c
	}
	doc.encryption = cfg
	doc.handler = nil
	return nil
}

// SetJavaScript sets a script which is run when the document is opened.
// The script is checked for syntax errors.  An empty script removes the
// open action.
func (doc *Document) SetJavaScript(script string) error {
	if script != "" {
		_, err := goja.Compile("OpenAction", script, false)
		if err != nil {
			return argError("SetJavaScript", "%s", err)
		}
	}
	doc.javaScript = script
	return nil
}

// securityHandler returns the security handler, deriving the keys on
// first use.
func (doc *Document) securityHandler() (*crypt.Handler, error) {
	if doc.handler != nil {
		return doc.handler, nil
	}
	h, err := crypt.New(doc.encryption, doc.id, doc.version)
	if err != nil {
		return nil, err
	}
	doc.handler = h
	return h, nil
}
