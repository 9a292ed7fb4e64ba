// seehuhn.de/go/pdfgen - a library for generating PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

package crypt

import "strings"

// Config describes the passwords and permissions of an encrypted document.
// The zero value of the permission fields allows everything.
type Config struct {
	UserPassword  string
	OwnerPassword string

	Print PrintMode

	// Deny lists the operations which are not permitted when the document
	// is opened with the user password.
	Deny Perm
}

// PrintMode describes whether the user may print the document.
type PrintMode int

// These are the supported print modes.
const (
	PrintDefault PrintMode = iota // same as PrintHigh
	PrintHigh                     // printing at full resolution
	PrintLow                      // degraded printing only
	PrintNone                     // no printing
)

func (m PrintMode) String() string {
	switch m {
	case PrintDefault:
		return "default"
	case PrintHigh:
		return "high"
	case PrintLow:
		return "low"
	case PrintNone:
		return "none"
	}
	return "PrintMode(?)"
}

// Perm is a set of operations which can be denied to the user.
// Permissions only restrict User access, Owner access is unrestricted.
//
// It is up to the viewer application to enforce the permissions.
type Perm int

const (
	// PermModify allows to modify the document.
	PermModify Perm = 1 << iota

	// PermCopy allows to extract text and graphics.
	PermCopy

	// PermAnnotate allows to add or modify text annotations.
	PermAnnotate

	// PermFillForms allows to fill in form fields, including signature
	// fields.
	PermFillForms

	// PermExtract allows to extract text and graphics for accessibility.
	PermExtract

	// PermAssemble allows to insert, rotate, or delete pages and to create
	// bookmarks or thumbnail images.
	PermAssemble

	permNext
)

var permNames = []string{"modify", "copy", "annotate", "fill-forms", "extract", "assemble"}

func (perm Perm) String() string {
	var parts []string
	for i, name := range permNames {
		if perm&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// bit positions in the P entry, 1-based as in ISO 32000
var permBits = map[Perm]int{
	PermModify:    4,
	PermCopy:      5,
	PermAnnotate:  6,
	PermFillForms: 9,
	PermExtract:   10,
	PermAssemble:  11,
}

// P returns the permission flags for the /P entry of the encryption
// dictionary.  All bits are set, except for the two low-order bits and
// the bits of the denied operations.
func (cfg *Config) P() uint32 {
	forbidden := uint32(3)
	for perm := Perm(1); perm < permNext; perm <<= 1 {
		if cfg.Deny&perm != 0 {
			forbidden |= 1 << (permBits[perm] - 1)
		}
	}
	switch cfg.Print {
	case PrintNone:
		forbidden |= 1<<(3-1) | 1<<(12-1)
	case PrintLow:
		forbidden |= 1 << (12 - 1)
	}
	return ^forbidden
}
