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
	"errors"
	"strconv"
)

var (
	// ErrVersion is returned for unknown PDF version strings.
	ErrVersion = errors.New("unsupported PDF version")

	errClosed = errors.New("pdf: writer already closed")
)

// OrderError is returned by [Writer.WriteIndirect] when objects are not
// written in ascending order without gaps.
type OrderError struct {
	Want, Got uint32
}

func (err *OrderError) Error() string {
	return "pdf: object " + strconv.FormatUint(uint64(err.Got), 10) +
		" written out of order, expected object " +
		strconv.FormatUint(uint64(err.Want), 10)
}

// CountError is returned by [Writer.Close] if the trailer /Size does not
// match the number of objects written.
type CountError struct {
	Size    int
	Written int
}

func (err *CountError) Error() string {
	return "pdf: trailer /Size " + strconv.Itoa(err.Size) +
		" does not match " + strconv.Itoa(err.Written) + " written objects"
}
