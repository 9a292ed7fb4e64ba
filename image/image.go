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


// Package image provides image descriptors for embedding raster images
// in PDF files.
package image

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/registry"
)

// Image describes an image XObject.
type Image struct {
	Width, Height    int
	ColorSpace       pdf.Name // DeviceGray, DeviceRGB or DeviceCMYK
	BitsPerComponent int

	// Data holds the image samples.  If Filter is empty, this is the raw
	// sample data, which is compressed when the file is written.
	// Otherwise the data is already encoded using the given filter.
	Data        []byte
	Filter      pdf.Name
	DecodeParms pdf.Dict

	// Decode, if set, is the /Decode array of the image.
	Decode []float64

	// Mask is an optional soft mask or stencil mask.
	Mask *Image

	// IsStencil marks a 1-bit stencil mask.  Stencil masks have no colour
	// space.  A stencil mask used as the Mask of another image is
	// referenced via /Mask, a soft mask via /SMask.
	IsStencil bool

	Interpolate bool
}

var (
	errNoMask       = errors.New("mask must not have a mask")
	errEmptyImage   = errors.New("image has zero size")
	errStencilDepth = errors.New("stencil masks must use 1 bit per component")
)

func channels(cs pdf.Name) int {
	switch cs {
	case "DeviceGray":
		return 1
	case "DeviceRGB":
		return 3
	case "DeviceCMYK":
		return 4
	}
	return 0
}

// Validate checks that the image descriptor is consistent.
func (im *Image) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return errEmptyImage
	}
	nComp := 1
	if im.IsStencil {
		if im.BitsPerComponent != 1 {
			return errStencilDepth
		}
	} else {
		nComp = channels(im.ColorSpace)
		if nComp == 0 {
			return fmt.Errorf("unsupported colour space %q", im.ColorSpace)
		}
	}
	switch im.BitsPerComponent {
	case 1, 2, 4, 8, 16:
		// pass
	default:
		return fmt.Errorf("invalid BitsPerComponent %d", im.BitsPerComponent)
	}
	if im.Filter == "" {
		stride := (im.Width*nComp*im.BitsPerComponent + 7) / 8
		if len(im.Data) != stride*im.Height {
			return fmt.Errorf("expected %d bytes of image data, got %d",
				stride*im.Height, len(im.Data))
		}
	}
	if im.Decode != nil && len(im.Decode) != 2*nComp {
		return fmt.Errorf("/Decode array has %d entries, expected %d",
			len(im.Decode), 2*nComp)
	}
	if im.Mask != nil {
		if im.Mask.Mask != nil {
			return errNoMask
		}
		if !im.Mask.IsStencil && im.Mask.ColorSpace != "DeviceGray" {
			return fmt.Errorf("soft mask must use DeviceGray, not %q", im.Mask.ColorSpace)
		}
		if err := im.Mask.Validate(); err != nil {
			return fmt.Errorf("mask: %w", err)
		}
	}
	return nil
}

// Key returns the content hash used to deduplicate images.
func (im *Image) Key() registry.Key {
	h := registry.NewHasher("image")
	im.hash(h)
	if im.Mask != nil {
		im.Mask.hash(h.Bool(true))
	} else {
		h.Bool(false)
	}
	return h.Sum()
}

func (im *Image) hash(h *registry.Hasher) {
	h.Int(im.Width).Int(im.Height)
	h.String(string(im.ColorSpace)).Int(im.BitsPerComponent)
	h.Bytes(im.Data).String(string(im.Filter)).String(pdf.Format(im.DecodeParms))
	h.Float(im.Decode...).Int(len(im.Decode))
	h.Bool(im.IsStencil).Bool(im.Interpolate)
}

// Stream returns the image XObject.  If the image has a mask, maskRef
// must be the reference of the mask's XObject.
func (im *Image) Stream(maskRef pdf.Reference) *pdf.Stream {
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(im.Width),
		"Height":           pdf.Integer(im.Height),
		"BitsPerComponent": pdf.Integer(im.BitsPerComponent),
	}
	if im.IsStencil {
		dict["ImageMask"] = pdf.Bool(true)
	} else {
		dict["ColorSpace"] = im.ColorSpace
	}
	if im.Filter != "" {
		dict["Filter"] = im.Filter
		if im.DecodeParms != nil {
			dict["DecodeParms"] = im.DecodeParms
		}
	}
	if im.Decode != nil {
		decode := make(pdf.Array, len(im.Decode))
		for i, x := range im.Decode {
			decode[i] = pdf.Number(x)
		}
		dict["Decode"] = decode
	}
	if im.Interpolate {
		dict["Interpolate"] = pdf.Bool(true)
	}
	if im.Mask != nil {
		if im.Mask.IsStencil {
			dict["Mask"] = maskRef
		} else {
			dict["SMask"] = maskRef
		}
	}
	return &pdf.Stream{
		Dict:     dict,
		Data:     im.Data,
		Compress: im.Filter == "",
	}
}

// FromImage converts a Go image into an image descriptor.  Gray images
// are stored using DeviceGray, all other images using DeviceRGB.  If any
// pixel is not fully opaque, the alpha channel is stored as a soft mask.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()

	if g, ok := src.(*image.Gray); ok {
		data := make([]byte, 0, width*height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := g.Pix[g.PixOffset(b.Min.X, y):]
			data = append(data, row[:width]...)
		}
		return &Image{
			Width:            width,
			Height:           height,
			ColorSpace:       "DeviceGray",
			BitsPerComponent: 8,
			Data:             data,
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	rgb := make([]byte, 0, 3*width*height)
	alpha := make([]byte, 0, width*height)
	opaque := true
	for i := 0; i < len(img.Pix); i += 4 {
		rgb = append(rgb, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		a := img.Pix[i+3]
		alpha = append(alpha, a)
		if a != 0xFF {
			opaque = false
		}
	}

	res := &Image{
		Width:            width,
		Height:           height,
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		Data:             rgb,
	}
	if !opaque {
		res.Mask = &Image{
			Width:            width,
			Height:           height,
			ColorSpace:       "DeviceGray",
			BitsPerComponent: 8,
			Data:             alpha,
		}
	}
	return res
}
