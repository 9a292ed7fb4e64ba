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


package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// FromJPEG wraps JPEG-encoded data into an image descriptor.  The data is
// embedded unchanged, using the DCTDecode filter.
func FromJPEG(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("JPEG image: %w", err)
	}

	res := &Image{
		Width:            cfg.Width,
		Height:           cfg.Height,
		BitsPerComponent: 8,
		Data:             data,
		Filter:           "DCTDecode",
	}
	switch cfg.ColorModel {
	case color.GrayModel:
		res.ColorSpace = "DeviceGray"
	case color.CMYKModel:
		// Adobe applications write inverted CMYK data.
		res.ColorSpace = "DeviceCMYK"
		res.Decode = []float64{1, 0, 1, 0, 1, 0, 1, 0}
	default:
		res.ColorSpace = "DeviceRGB"
	}
	return res, nil
}

// EncodeJPEG compresses a Go image using lossy JPEG compression.
// Transparency information is discarded.
func EncodeJPEG(src image.Image, opts *jpeg.Options) (*Image, error) {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	buf := &bytes.Buffer{}
	err := jpeg.Encode(buf, img, opts)
	if err != nil {
		return nil, err
	}
	return FromJPEG(buf.Bytes())
}
