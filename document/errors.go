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


package document

import (
	"errors"
	"fmt"
)

var (
	// ErrLastPage is returned when deleting the only page of a document.
	ErrLastPage = errors.New("cannot delete the last remaining page")

	// ErrBadPermutation is returned by [Document.ReorderPages] if the new
	// order is not a permutation of the page indices.
	ErrBadPermutation = errors.New("page order is not a permutation")

	errNoFont      = errors.New("no font selected")
	errEncryptPDFA = errors.New("PDF/A files cannot be encrypted")
)

// ArgumentError indicates an invalid argument to an authoring call.
// The document is not modified when an ArgumentError is returned.
type ArgumentError struct {
	Op     string
	Reason string
}

func (err *ArgumentError) Error() string {
	return err.Op + ": " + err.Reason
}

func argError(op, format string, args ...any) error {
	return &ArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// PageIndexError indicates a page index outside the valid range.
type PageIndexError struct {
	Index    int
	NumPages int
}

func (err *PageIndexError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", err.Index, err.NumPages)
}

// ObjectError wraps an error which occurred while generating one object
// of the output file.
type ObjectError struct {
	// Number is the object number, or 0 if the failure occurred before
	// the object number was known.
	Number uint32

	// Kind describes the object, for example "page 3" or "attachment
	// data.csv".
	Kind string

	Err error
}

func (err *ObjectError) Error() string {
	if err.Number == 0 {
		return err.Kind + ": " + err.Err.Error()
	}
	return fmt.Sprintf("object %d (%s): %s", err.Number, err.Kind, err.Err)
}

func (err *ObjectError) Unwrap() error {
	return err.Err
}
