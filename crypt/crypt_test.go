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
	"bytes"
	"encoding/hex"
	"errors"
	"math/bits"
	"testing"

	"seehuhn.de/go/pdfgen"
)

var testID = []byte("0123456789abcdef")

func TestRevisions(t *testing.T) {
	cases := []struct {
		ver      pdf.Version
		R, V     int
		keyBytes int
	}{
		{pdf.V1_3, 2, 1, 5},
		{pdf.V1_4, 3, 2, 16},
		{pdf.V1_7, 3, 2, 16},
	}
	for _, test := range cases {
		cfg := &Config{UserPassword: "user", OwnerPassword: "owner"}
		sec, err := New(cfg, testID, test.ver)
		if err != nil {
			t.Fatal(err)
		}
		if sec.R != test.R || sec.V != test.V {
			t.Errorf("%s: got R=%d V=%d, want R=%d V=%d",
				test.ver, sec.R, sec.V, test.R, test.V)
		}
		if len(sec.O) != 32 || len(sec.U) != 32 {
			t.Errorf("%s: len(O)=%d len(U)=%d", test.ver, len(sec.O), len(sec.U))
		}
		if len(sec.Key()) != test.keyBytes {
			t.Errorf("%s: key has %d bytes, want %d",
				test.ver, len(sec.Key()), test.keyBytes)
		}

		dict := sec.AsDict()
		if dict["R"] != pdf.Integer(test.R) || dict["V"] != pdf.Integer(test.V) {
			t.Errorf("%s: wrong encryption dictionary %v", test.ver, dict)
		}
		_, hasLength := dict["Length"]
		if hasLength != (test.V >= 2) {
			t.Errorf("%s: unexpected /Length presence", test.ver)
		}
	}
}

func TestRevision3Padding(t *testing.T) {
	sec, err := New(&Config{UserPassword: "x"}, testID, pdf.V1_7)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sec.U[16:], make([]byte, 16)) {
		t.Errorf("U is not zero padded: %x", sec.U)
	}
}

func TestAuthenticate(t *testing.T) {
	for _, ver := range []pdf.Version{pdf.V1_3, pdf.V1_6} {
		cfg := &Config{UserPassword: "secret", OwnerPassword: "boss"}
		sec, err := New(cfg, testID, ver)
		if err != nil {
			t.Fatal(err)
		}

		if err := sec.AuthenticateUser("secret"); err != nil {
			t.Errorf("%s: user password rejected: %v", ver, err)
		}
		if err := sec.AuthenticateOwner("boss"); err != nil {
			t.Errorf("%s: owner password rejected: %v", ver, err)
		}
		if err := sec.AuthenticateUser("boss"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("%s: wrong user password accepted", ver)
		}
		if err := sec.AuthenticateOwner("secret"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("%s: wrong owner password accepted", ver)
		}
	}
}

func TestEmptyOwnerPassword(t *testing.T) {
	sec, err := New(&Config{UserPassword: "only"}, testID, pdf.V1_7)
	if err != nil {
		t.Fatal(err)
	}
	if err := sec.AuthenticateOwner("only"); err != nil {
		t.Error(err)
	}
}

func TestDeterministic(t *testing.T) {
	cfg := &Config{UserPassword: "a", OwnerPassword: "b"}
	sec1, _ := New(cfg, testID, pdf.V1_7)
	sec2, _ := New(cfg, testID, pdf.V1_7)
	if !bytes.Equal(sec1.O, sec2.O) || !bytes.Equal(sec1.U, sec2.U) {
		t.Error("key derivation is not deterministic")
	}

	sec3, _ := New(cfg, []byte("fedcba9876543210"), pdf.V1_7)
	if bytes.Equal(sec1.Key(), sec3.Key()) {
		t.Error("file identifier does not influence the key")
	}
}

func TestBadPassword(t *testing.T) {
	_, err := New(&Config{UserPassword: "日本"}, testID, pdf.V1_7)
	var pwdErr *PasswordError
	if !errors.As(err, &pwdErr) || pwdErr.Which != "user" {
		t.Errorf("expected PasswordError, got %v", err)
	}
}

func TestKeyForRef(t *testing.T) {
	for _, ver := range []pdf.Version{pdf.V1_2, pdf.V1_7} {
		sec, err := New(&Config{UserPassword: "u"}, testID, ver)
		if err != nil {
			t.Fatal(err)
		}
		k1 := sec.KeyForRef(pdf.NewReference(1, 0))
		k2 := sec.KeyForRef(pdf.NewReference(2, 0))
		want := len(sec.Key()) + 5
		if want > 16 {
			want = 16
		}
		if len(k1) != want {
			t.Errorf("%s: object key has %d bytes, want %d", ver, len(k1), want)
		}
		if bytes.Equal(k1, k2) {
			t.Errorf("%s: objects 1 and 2 share a key", ver)
		}
	}
}

func TestEncryptBytesSymmetric(t *testing.T) {
	sec, err := New(&Config{UserPassword: "u"}, testID, pdf.V1_7)
	if err != nil {
		t.Fatal(err)
	}
	ref := pdf.NewReference(12, 0)
	plain := []byte("Hello World")
	enc, _ := sec.EncryptBytes(ref, bytes.Clone(plain))
	if bytes.Equal(enc, plain) {
		t.Fatal("data not encrypted")
	}
	dec, _ := sec.EncryptBytes(ref, enc)
	if !bytes.Equal(dec, plain) {
		t.Errorf("round trip failed: %q", dec)
	}
}

func TestPermissions(t *testing.T) {
	def := (&Config{}).P()
	if def != 0xFFFFFFFC {
		t.Errorf("default permissions: got %08x", def)
	}
	for _, bit := range []int{3, 4, 5, 6, 12} {
		if def&(1<<(bit-1)) == 0 {
			t.Errorf("bit %d not set by default", bit)
		}
	}
	if high := (&Config{Print: PrintHigh}).P(); high != def {
		t.Errorf("PrintHigh differs from default: %08x", high)
	}

	for perm, bit := range permBits {
		p := (&Config{Deny: perm}).P()
		if diff := def ^ p; diff != 1<<(bit-1) {
			t.Errorf("deny %s: changed bits %032b", perm, diff)
		}
	}

	low := (&Config{Print: PrintLow}).P()
	if def^low != 1<<11 {
		t.Errorf("PrintLow: changed bits %032b", def^low)
	}
	none := (&Config{Print: PrintNone}).P()
	if bits.OnesCount32(def^none) != 2 || none&(1<<2) != 0 {
		t.Errorf("PrintNone: changed bits %032b", def^none)
	}
}

func TestEncryptRaw(t *testing.T) {
	sec, err := New(&Config{UserPassword: "u"}, testID, pdf.V1_7)
	if err != nil {
		t.Fatal(err)
	}
	ref := pdf.NewReference(5, 0)
	raw := []byte("<< /T (a\\)b) >>")
	enc, err := sec.EncryptRaw(ref, raw)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(enc, []byte("a)b")) {
		t.Errorf("string left in clear: %q", enc)
	}
	dec, err := sec.EncryptRaw(ref, enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != "<< /T <612962> >>" {
		t.Errorf("round trip gave %q", dec)
	}
}

// TestKnownAnswer compares the derived values against vectors computed
// independently from the algorithms in ISO 32000-1, section 7.6.3.
func TestKnownAnswer(t *testing.T) {
	cases := []struct {
		ver       pdf.Version
		O, U, key string
		key1      string // key for object 1 0
		keyBig    string // key for object 0x123456 0
		hello     string // "Hello" encrypted for object 1 0
	}{
		{
			ver:    pdf.V1_3,
			O:      "94e8094419662a774442fb072e3d9f19e9d130ec09a4d0061e78fe920f7ab62f",
			U:      "76ca91e329fa928551771a26e5fc48d9d147e1613e07cb56f73245e2af4373b2",
			key:    "0aab823988",
			key1:   "c9b8d67d091ff93e651b",
			keyBig: "f316408e3a12318f3fad",
			hello:  "ec6b14109f",
		},
		{
			ver:    pdf.V1_7,
			O:      "0ba3835f88f90388e74e54584125ce142be0de24c6b0d37746e075b891756671",
			U:      "2631991ca1f681670aba5dedd81f812b",
			key:    "1deeb701c60f8c372c918bfeda5b915f",
			key1:   "f42dd63dbe7703220e2ec9ca0379f7f8",
			keyBig: "f5c3402c7156fc5dd4f200fe00514574",
			hello:  "5b584d700c",
		},
	}
	for _, test := range cases {
		cfg := &Config{UserPassword: "user", OwnerPassword: "owner"}
		if cfg.P() != 0xFFFFFFFC {
			t.Fatalf("P = %08x", cfg.P())
		}
		sec, err := New(cfg, testID, test.ver)
		if err != nil {
			t.Fatal(err)
		}

		check := func(what string, got []byte, want string) {
			t.Helper()
			if hex.EncodeToString(got) != want {
				t.Errorf("%s: %s = %x, want %s", test.ver, what, got, want)
			}
		}
		check("O", sec.O, test.O)
		check("U", sec.U[:len(test.U)/2], test.U)
		check("key", sec.Key(), test.key)
		check("object key", sec.KeyForRef(pdf.NewReference(1, 0)), test.key1)
		check("object key", sec.KeyForRef(pdf.NewReference(0x123456, 0)), test.keyBig)

		enc, err := sec.EncryptBytes(pdf.NewReference(1, 0), []byte("Hello"))
		if err != nil {
			t.Fatal(err)
		}
		check("ciphertext", enc, test.hello)
	}
}
