// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Encryptor encrypts the strings and streams of one indirect object.
// The reference identifies the enclosing object, so that a per-object
// key can be derived.
type Encryptor interface {
	// EncryptBytes encrypts a string or the data of a stream.
	// The function may modify buf and may return buf.
	EncryptBytes(ref Reference, buf []byte) ([]byte, error)

	// EncryptRaw encrypts all strings inside a fragment of PDF syntax.
	EncryptRaw(ref Reference, raw []byte) ([]byte, error)
}

// WriterOptions controls how a PDF file is written.
type WriterOptions struct {
	Version Version

	// CompressLevel is the deflate level used for streams with the
	// Compress flag set.  Compression is disabled if Compress is false.
	Compress      bool
	CompressLevel int

	// Encryptor, if non-nil, encrypts all strings and streams.
	Encryptor Encryptor
}

// Writer serializes numbered objects to a PDF file.  Objects must be
// written in ascending order of their object numbers, starting at 1.
// The byte offset of every object is recorded for the cross-reference
// table written by [Writer.Close].
type Writer struct {
	w       *posWriter
	opt     WriterOptions
	offsets []int64
	closed  bool
}

// NewWriter writes the PDF header to w and returns a Writer.
func NewWriter(w io.Writer, opt *WriterOptions) (*Writer, error) {
	if opt == nil {
		opt = &WriterOptions{Version: V1_7}
	}
	verString, err := opt.Version.ToString()
	if err != nil {
		return nil, err
	}

	pdf := &Writer{
		w:   &posWriter{w: w},
		opt: *opt,
	}

	_, err = fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", verString)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// WriteIndirect writes obj as the indirect object ref.  Strings and
// streams inside obj are encrypted with the key for ref, if the Writer
// encrypts.
func (pdf *Writer) WriteIndirect(ref Reference, obj Object) error {
	return pdf.writeIndirect(ref, obj, pdf.opt.Encryptor)
}

// WriteIndirectPlain is like [Writer.WriteIndirect], but never encrypts.
// This is used for the encryption dictionary.
func (pdf *Writer) WriteIndirectPlain(ref Reference, obj Object) error {
	return pdf.writeIndirect(ref, obj, nil)
}

func (pdf *Writer) writeIndirect(ref Reference, obj Object, enc Encryptor) error {
	if pdf.closed {
		return errClosed
	}
	want := uint32(len(pdf.offsets) + 1)
	if ref.Number() != want || ref.Generation() != 0 {
		return &OrderError{Want: want, Got: ref.Number()}
	}

	pos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d 0 obj\n", ref.Number())
	if err != nil {
		return err
	}

	pdf.w.ref = ref
	pdf.w.enc = enc
	if stm, ok := obj.(*Stream); ok {
		err = pdf.writeStream(ref, stm, enc)
	} else {
		err = writeObject(pdf.w, obj)
	}
	pdf.w.enc = nil
	if err != nil {
		return fmt.Errorf("object %d: %w", ref.Number(), err)
	}

	_, err = pdf.w.Write([]byte("\nendobj\n"))
	if err != nil {
		return err
	}
	pdf.offsets = append(pdf.offsets, pos)
	return nil
}

// writeStream applies compression and encryption to the stream data.
// The /Length entry is set after each transformation, so that it always
// matches the number of bytes between "stream" and "endstream".
func (pdf *Writer) writeStream(ref Reference, stm *Stream, enc Encryptor) error {
	dict := stm.Dict.Clone()
	if dict == nil {
		dict = Dict{}
	}
	data := stm.Data
	dict["Length"] = Integer(len(data))

	if stm.Compress && pdf.opt.Compress {
		buf := &bytes.Buffer{}
		zw, err := zlib.NewWriterLevel(buf, pdf.opt.CompressLevel)
		if err != nil {
			return fmt.Errorf("compress: %w", err)
		}
		_, err = zw.Write(data)
		if err != nil {
			return fmt.Errorf("compress: %w", err)
		}
		err = zw.Close()
		if err != nil {
			return fmt.Errorf("compress: %w", err)
		}
		data = buf.Bytes()
		dict["Filter"] = Name("FlateDecode")
		dict["Length"] = Integer(len(data))
	}

	if enc != nil {
		var err error
		data, err = enc.EncryptBytes(ref, bytes.Clone(data))
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
		// RC4 does not change the length, but other ciphers might
		dict["Length"] = Integer(len(data))
	}

	return writeStreamBody(pdf.w, dict, data)
}

// Close writes the cross-reference table and the trailer.  The /Size entry
// of the trailer is filled in automatically and must not be present.
func (pdf *Writer) Close(trailer Dict) error {
	if pdf.closed {
		return errClosed
	}
	pdf.closed = true

	size := len(pdf.offsets) + 1
	if s, ok := trailer["Size"].(Integer); ok && int(s) != size {
		return &CountError{Size: int(s), Written: len(pdf.offsets)}
	}
	trailer = trailer.Clone()
	trailer["Size"] = Integer(size)

	xRefPos := pdf.w.pos
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, pos := range pdf.offsets {
		fmt.Fprintf(buf, "%010d 00000 n \n", pos)
	}
	buf.WriteString("trailer\n")
	_, err := pdf.w.Write(buf.Bytes())
	if err != nil {
		return err
	}
	err = trailer.PDF(pdf.w)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	return err
}

// Offsets returns the byte offsets of the objects written so far.
// Element i is the offset of object i+1.
func (pdf *Writer) Offsets() []int64 {
	return append([]int64(nil), pdf.offsets...)
}

type posWriter struct {
	w   io.Writer
	pos int64

	enc Encryptor
	ref Reference
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
