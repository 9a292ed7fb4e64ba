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

// Package crypt implements the PDF standard security handler, revisions 2
// and 3, using RC4 with 40-bit or 128-bit keys.
//
// The security handler is described in section 7.6.3 of PDF 32000-1:2008.
package crypt

import (
	"bytes"
	"crypto/md5"
	"crypto/rc4"
	"errors"

	"seehuhn.de/go/pdfgen"
)

// Handler is a pre-authenticated standard security handler, used to
// encrypt the strings and streams of a new PDF file.
type Handler struct {
	// R is the revision of the standard security handler, either 2 or 3.
	R int

	// V is the encryption algorithm version, either 1 (40-bit keys) or 2.
	V int

	// ID is the first element of the file identifier in the trailer.
	ID []byte

	// O is a byte string, based on the owner password, that is used in
	// computing the file encryption key and in determining whether a valid
	// owner password was entered.
	O []byte

	// U is a byte string, based on the user password, that is used to
	// check whether a valid user password was entered.
	U []byte

	// P is a set of flags specifying which operations are permitted when
	// the document is opened with user access.
	P uint32

	keyBytes int
	key      []byte
}

// New derives the encryption dictionary values and the file encryption key
// for a new document.  PDF versions before 1.4 use revision 2 with 40-bit
// keys, later versions use revision 3 with 128-bit keys.
//
// If the owner password is empty, the user password is used in its place.
func New(cfg *Config, id []byte, ver pdf.Version) (*Handler, error) {
	if len(id) == 0 {
		return nil, errMissingID
	}

	ownerPwd := cfg.OwnerPassword
	if ownerPwd == "" {
		ownerPwd = cfg.UserPassword
	}

	sec := &Handler{
		ID: bytes.Clone(id),
		P:  cfg.P(),
	}
	if ver >= pdf.V1_4 {
		sec.R, sec.V, sec.keyBytes = 3, 2, 16
	} else {
		sec.R, sec.V, sec.keyBytes = 2, 1, 5
	}

	paddedUserPwd, err := padPasswd(cfg.UserPassword)
	if err != nil {
		return nil, &PasswordError{Which: "user", Err: err}
	}
	paddedOwnerPwd, err := padPasswd(ownerPwd)
	if err != nil {
		return nil, &PasswordError{Which: "owner", Err: err}
	}

	sec.O = sec.computeO(paddedUserPwd, paddedOwnerPwd)
	sec.key = sec.computeFileEncryptionKey(paddedUserPwd)
	sec.U = sec.computeU(sec.key)

	return sec, nil
}

// Key returns a copy of the file encryption key.
func (sec *Handler) Key() []byte {
	return bytes.Clone(sec.key)
}

// KeyLength returns the length of the file encryption key in bits.
func (sec *Handler) KeyLength() int {
	return 8 * sec.keyBytes
}

// AsDict returns the encryption dictionary for the trailer.
func (sec *Handler) AsDict() pdf.Dict {
	dict := pdf.Dict{
		"Filter": pdf.Name("Standard"),
		"V":      pdf.Integer(sec.V),
		"R":      pdf.Integer(sec.R),
		"O":      pdf.String(sec.O),
		"U":      pdf.String(sec.U),
		"P":      pdf.Integer(int32(sec.P)),
	}
	if sec.V >= 2 {
		dict["Length"] = pdf.Integer(8 * sec.keyBytes)
	}
	return dict
}

// KeyForRef computes the RC4 key for the strings and streams of the
// indirect object ref.
func (sec *Handler) KeyForRef(ref pdf.Reference) []byte {
	h := md5.New()
	h.Write(sec.key)
	num := ref.Number()
	gen := ref.Generation()
	h.Write([]byte{
		byte(num), byte(num >> 8), byte(num >> 16),
		byte(gen), byte(gen >> 8)})
	l := sec.keyBytes + 5
	if l > 16 {
		l = 16
	}
	return h.Sum(nil)[:l]
}

// EncryptBytes encrypts the bytes in buf using the key for ref.
// This function modifies the contents of buf and returns buf.
func (sec *Handler) EncryptBytes(ref pdf.Reference, buf []byte) ([]byte, error) {
	c, err := rc4.NewCipher(sec.KeyForRef(ref))
	if err != nil {
		return nil, err
	}
	c.XORKeyStream(buf, buf)
	return buf, nil
}

// EncryptRaw encrypts every string inside the PDF syntax fragment raw,
// using the key for ref.  RC4 is symmetric, so the same call decrypts.
func (sec *Handler) EncryptRaw(ref pdf.Reference, raw []byte) ([]byte, error) {
	key := sec.KeyForRef(ref)
	return EncryptLiteralStrings(raw, func(s []byte) []byte {
		c, _ := rc4.NewCipher(key)
		out := make([]byte, len(s))
		c.XORKeyStream(out, s)
		return out
	})
}

func (sec *Handler) computeFileEncryptionKey(paddedUserPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedUserPwd)
	h.Write(sec.O)
	h.Write([]byte{
		byte(sec.P), byte(sec.P >> 8), byte(sec.P >> 16), byte(sec.P >> 24)})
	h.Write(sec.ID)
	key := h.Sum(nil)

	if sec.R >= 3 {
		for i := 0; i < 50; i++ {
			h.Reset()
			h.Write(key[:sec.keyBytes])
			key = h.Sum(key[:0])
		}
	}

	return key[:sec.keyBytes]
}

// ownerKey computes the RC4 key used for the O entry.
func (sec *Handler) ownerKey(paddedOwnerPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedOwnerPwd)
	sum := h.Sum(nil)
	if sec.R >= 3 {
		for i := 0; i < 50; i++ {
			h.Reset()
			// The digest is truncated to the key length before rehashing.
			h.Write(sum[:sec.keyBytes])
			sum = h.Sum(sum[:0])
		}
	}
	return sum[:sec.keyBytes]
}

func (sec *Handler) computeO(paddedUserPwd, paddedOwnerPwd []byte) []byte {
	rc4key := sec.ownerKey(paddedOwnerPwd)

	c, _ := rc4.NewCipher(rc4key)
	O := make([]byte, 32)
	c.XORKeyStream(O, paddedUserPwd)
	if sec.R >= 3 {
		xorPasses(O, rc4key)
	}
	return O
}

func (sec *Handler) computeU(fileEncryptionKey []byte) []byte {
	U := make([]byte, 32)
	switch sec.R {
	case 2:
		c, _ := rc4.NewCipher(fileEncryptionKey)
		c.XORKeyStream(U, passwdPad)
	default:
		h := md5.New()
		h.Write(passwdPad)
		h.Write(sec.ID)
		U = h.Sum(U[:0])
		c, _ := rc4.NewCipher(fileEncryptionKey)
		c.XORKeyStream(U, U)
		xorPasses(U, fileEncryptionKey)

		// The first 16 bytes are significant, the rest is padding.
		U = append(U[:16], make([]byte, 16)...)
	}
	return U
}

// xorPasses applies the 19 additional RC4 passes of revision 3, where pass
// i uses the key with every byte XORed with i.
func xorPasses(buf, key []byte) {
	tmpKey := make([]byte, len(key))
	for i := byte(1); i <= 19; i++ {
		for j := range tmpKey {
			tmpKey[j] = key[j] ^ i
		}
		c, _ := rc4.NewCipher(tmpKey)
		c.XORKeyStream(buf, buf)
	}
}

// AuthenticateUser checks whether pwd is a valid user password.
func (sec *Handler) AuthenticateUser(pwd string) error {
	padded, err := padPasswd(pwd)
	if err != nil {
		return &PasswordError{Which: "user", Err: err}
	}
	return sec.authenticateUser(padded)
}

func (sec *Handler) authenticateUser(paddedUserPwd []byte) error {
	key := sec.computeFileEncryptionKey(paddedUserPwd)
	U := sec.computeU(key)
	n := 32
	if sec.R >= 3 {
		n = 16
	}
	if !bytes.Equal(U[:n], sec.U[:n]) {
		return ErrWrongPassword
	}
	return nil
}

// AuthenticateOwner checks whether pwd is a valid owner password.
// This recovers the user password from O and checks it.
func (sec *Handler) AuthenticateOwner(pwd string) error {
	padded, err := padPasswd(pwd)
	if err != nil {
		return &PasswordError{Which: "owner", Err: err}
	}
	key := sec.ownerKey(padded)

	buf := make([]byte, 32)
	copy(buf, sec.O)
	switch sec.R {
	case 2:
		c, _ := rc4.NewCipher(key)
		c.XORKeyStream(buf, buf)
	default:
		tmpKey := make([]byte, len(key))
		for i := 19; i >= 0; i-- {
			for j := range tmpKey {
				tmpKey[j] = key[j] ^ byte(i)
			}
			c, _ := rc4.NewCipher(tmpKey)
			c.XORKeyStream(buf, buf)
		}
	}
	return sec.authenticateUser(buf)
}

var (
	// ErrWrongPassword is returned when authentication fails.
	ErrWrongPassword = errors.New("crypt: wrong password")

	errMissingID = errors.New("crypt: missing file identifier")
)
