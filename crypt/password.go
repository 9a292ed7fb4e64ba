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

package crypt

import (
	"errors"

	"github.com/xdg-go/stringprep"
	"golang.org/x/text/encoding/charmap"
)

// PasswordError is returned when a password cannot be used to derive
// an encryption key.
type PasswordError struct {
	Which string // "user" or "owner"
	Err   error
}

func (err *PasswordError) Error() string {
	return "crypt: invalid " + err.Which + " password: " + err.Err.Error()
}

func (err *PasswordError) Unwrap() error {
	return err.Err
}

var errUnrepresentable = errors.New("character cannot be represented")

// padPasswd normalizes the password, encodes it as WinAnsi, and truncates
// or pads it to 32 bytes.  The result always has length 32.
func padPasswd(passwd string) ([]byte, error) {
	prepped, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		return nil, err
	}
	buf, err := charmap.Windows1252.NewEncoder().Bytes([]byte(prepped))
	if err != nil {
		return nil, errUnrepresentable
	}

	padded := make([]byte, 32)
	n := copy(padded, buf)
	copy(padded[n:], passwdPad)

	return padded, nil
}

var passwdPad = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}
