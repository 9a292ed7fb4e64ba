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

// Pdfgen writes a sample PDF file which exercises most features of the
// library.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfgen"
	"seehuhn.de/go/pdfgen/content"
	"seehuhn.de/go/pdfgen/crypt"
	"seehuhn.de/go/pdfgen/document"
	"seehuhn.de/go/pdfgen/font"
	"seehuhn.de/go/pdfgen/image"
	"seehuhn.de/go/pdfgen/shading"
)

func main() {
	out := flag.String("o", "sample.pdf", "output file")
	version := flag.String("version", "1.7", "PDF version")
	encrypt := flag.Bool("encrypt", false, "encrypt the output (prompts for passwords)")
	userPwd := flag.String("user", "", "user password, implies -encrypt")
	ownerPwd := flag.String("owner", "", "owner password, implies -encrypt")
	noCopy := flag.Bool("no-copy", false, "deny copying of text and graphics")
	pdfa := flag.Bool("pdfa", false, "write PDF/A style output")
	jpegFile := flag.String("jpeg", "", "JPEG image to place on the first page")
	verbose := flag.Bool("v", false, "show debug messages")
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ver, err := pdf.ParseVersion(*version)
	if err != nil {
		log.WithError(err).Fatal("invalid PDF version")
	}

	var cfg *crypt.Config
	if *encrypt || *userPwd != "" || *ownerPwd != "" {
		cfg = &crypt.Config{UserPassword: *userPwd, OwnerPassword: *ownerPwd}
		if *encrypt && *userPwd == "" && *ownerPwd == "" {
			cfg.UserPassword = readPassword("user password: ")
			cfg.OwnerPassword = readPassword("owner password: ")
		}
		if *noCopy {
			cfg.Deny |= crypt.PermCopy
		}
	}

	doc, err := document.New(&document.Options{
		Version: ver,
		Info: &pdf.Info{
			Title:  "pdfgen sample",
			Author: "pdfgen",
		},
		Logger:     log,
		PDFA:       *pdfa,
		PageLayout: "OneColumn",
	})
	if err != nil {
		log.WithError(err).Fatal("cannot create document")
	}
	if cfg != nil {
		err = doc.SetEncryption(cfg)
		if err != nil {
			log.WithError(err).Fatal("cannot enable encryption")
		}
	}

	err = drawSample(doc, *jpegFile)
	if err != nil {
		log.WithError(err).Fatal("cannot draw sample")
	}

	f, err := os.Create(*out)
	if err != nil {
		log.WithError(err).Fatal("cannot create output file")
	}
	err = doc.Write(f)
	if err != nil {
		f.Close()
		log.WithError(err).Fatal("cannot write PDF")
	}
	err = f.Close()
	if err != nil {
		log.WithError(err).Fatal("cannot write PDF")
	}
	log.WithField("file", *out).Info("PDF written")
}

func readPassword(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	passwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		logrus.WithError(err).Fatal("cannot read password")
	}
	return string(passwd)
}

func drawSample(doc *document.Document, jpegFile string) error {
	goRegular, err := font.LoadTrueType(goregular.TTF)
	if err != nil {
		return err
	}
	helv, err := font.Standard(font.HelveticaBold)
	if err != nil {
		return err
	}

	// page 1: text, shapes and a gradient
	p := doc.AddDefaultPage()
	err = p.SetFont(helv, 24)
	if err != nil {
		return err
	}
	err = p.Text(72, 770, "pdfgen sample document")
	if err != nil {
		return err
	}
	err = p.SetFont(goRegular, 11)
	if err != nil {
		return err
	}
	err = p.Text(72, 745, fmt.Sprintf("Generated on %s.", time.Now().Format("2 January 2006")))
	if err != nil {
		return err
	}

	p.SetLineWidth(2)
	p.SetStrokeColor(content.Blue)
	p.SetFillColor(content.RGB{R: 1, G: 0.8, B: 0.2})
	p.Pie(150, 600, 60, 0, 1.5*math.Pi)
	p.FillAndStroke()
	p.Donut(320, 600, 60, 30, 0, math.Pi)
	p.Stroke()
	p.RegularPolygon(470, 600, 50, 6, 0)
	p.Stroke()

	grad := &shading.Linear{
		X0: 72, Y0: 0, X1: 523, Y1: 0,
		Stops: []shading.Stop{
			{Offset: 0, Color: content.Red},
			{Offset: 0.5, Color: content.Green},
			{Offset: 1, Color: content.Blue},
		},
	}
	p.PushGraphicsState()
	p.Rectangle(72, 420, 451, 80)
	p.ClipNonZero()
	p.EndPath()
	err = p.FillGradient(grad)
	if err != nil {
		return err
	}
	p.PopGraphicsState()

	if jpegFile != "" {
		data, err := os.ReadFile(jpegFile)
		if err != nil {
			return err
		}
		im, err := image.FromJPEG(data)
		if err != nil {
			return err
		}
		err = p.DrawImage(im, 72, 200, 200, 200*float64(im.Height)/float64(im.Width))
		if err != nil {
			return err
		}
	}

	link := rect.Rect{LLx: 72, LLy: 100, URx: 300, URy: 120}
	err = p.Text(72, 105, "Go to page 2")
	if err != nil {
		return err
	}
	err = p.AddPageLink(link, 1, 800)
	if err != nil {
		return err
	}

	// page 2: a template, a form field and a watermark
	q := doc.AddDefaultPage()
	tpl, err := doc.NewTemplate("badge", 100, 40)
	if err != nil {
		return err
	}
	tpl.SetFillColor(content.Gray(0.9))
	tpl.RoundedRectangle(0, 0, 100, 40, 8)
	tpl.Fill()
	for i := range 3 {
		err = q.DrawTemplate("badge", 72+float64(i)*120, 700, 1)
		if err != nil {
			return err
		}
	}
	err = doc.AddField(&document.Field{
		Kind: document.TextField,
		Name: "comment",
		Page: 1,
		Rect: rect.Rect{LLx: 72, LLy: 600, URx: 400, URy: 620},
	})
	if err != nil {
		return err
	}
	err = q.AddWatermark(document.Watermark{Text: "SAMPLE", Angle: 45})
	if err != nil {
		return err
	}

	ch1, err := doc.AddBookmark("Drawing", 0, nil)
	if err != nil {
		return err
	}
	_, err = doc.AddBookmark("Forms", 1, nil)
	if err != nil {
		return err
	}
	_, err = doc.AddBookmark("Gradient", 0, ch1)
	return err
}
