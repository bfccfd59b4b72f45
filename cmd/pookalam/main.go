// seehuhn.de/go/pookalam - a symmetric floral pattern designer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Command pookalam replays a design session and exports the result.
//
// Usage:
//
//	pookalam [-config settings.toml] -script session.yaml [-png out.png] [-svg out.svg] [-pdf out.pdf]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"seehuhn.de/go/pookalam/config"
	"seehuhn.de/go/pookalam/editor"
	"seehuhn.de/go/pookalam/export"
	"seehuhn.de/go/pookalam/script"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pookalam: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("pookalam", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "settings file (TOML)")
	scriptFile := fs.String("script", "", "session script (YAML) to replay")
	pngFile := fs.String("png", "", "write the design as PNG to `file`")
	svgFile := fs.String("svg", "", "write the design as SVG to `file`")
	pdfFile := fs.String("pdf", "", "write the design as PDF to `file`")
	textureDir := fs.String("textures", "", "directory with texture images")
	size := fs.Int("size", 0, "PNG width and height in pixels")
	quiet := fs.Bool("q", false, "do not show progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *scriptFile == "" {
		return errors.New("no session script given (use -script)")
	}

	var cfg *config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if *size > 0 {
		cfg.Export.PNGSize = *size
	}
	if *textureDir != "" {
		cfg.Textures.Dir = *textureDir
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	s, err := script.Load(*scriptFile)
	if err != nil {
		return err
	}
	ed := editor.New(cfg.EditorOptions(logger))
	if err := script.NewPlayer(ed).Run(s); err != nil {
		return fmt.Errorf("%s: %w", *scriptFile, err)
	}
	logger.Info("session replayed",
		"name", s.Name,
		"steps", len(s.Steps),
		"shapes", ed.Len(),
		"symmetry", ed.Symmetry())

	opt := &export.Options{
		Size:       cfg.Export.PNGSize,
		Background: cfg.Export.Background,
	}
	if cfg.Textures.Dir != "" {
		opt.Textures = export.DirTextures(cfg.Textures.Dir)
	}
	showProgress := !*quiet && isTerminal(stderr)

	shapes := ed.Shapes()
	sym := ed.Symmetry()
	outputs := []struct {
		name  string
		write func(fname string) error
	}{
		{*pngFile, func(fname string) error {
			return writeFile(fname, func(w io.Writer) error { return export.PNG(w, shapes, sym, opt) })
		}},
		{*svgFile, func(fname string) error {
			return writeFile(fname, func(w io.Writer) error { return export.SVG(w, shapes, sym, opt) })
		}},
		{*pdfFile, func(fname string) error {
			return export.PDF(fname, shapes, sym, opt)
		}},
	}
	for _, out := range outputs {
		if out.name == "" {
			continue
		}
		var bar *progressbar.ProgressBar
		if showProgress {
			bar = progressbar.NewOptions(len(shapes),
				progressbar.OptionSetWriter(stderr),
				progressbar.OptionSetDescription(out.name),
				progressbar.OptionClearOnFinish())
			opt.Progress = func(done, _ int) { bar.Set(done) }
		}
		err := out.write(out.name)
		if bar != nil {
			bar.Finish()
			opt.Progress = nil
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", out.name, err)
		}
		logger.Info("exported", "file", out.name)
	}
	return nil
}

// writeFile creates fname and passes it to write.
func writeFile(fname string, write func(io.Writer) error) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
