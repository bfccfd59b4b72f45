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

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScript = `
name: test flower
symmetry: {radial: 6}
steps:
  - {action: click, at: [400, 250]}
  - {action: tool, tool: {kind: ring, size: 60, color: "#2ec4b6"}}
  - {action: place, at: [400, 400]}
`

const testConfig = `
[export]
png_size = 200
background = "#ffffff"

[log]
level = "info"
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		fname := filepath.Join(dir, name)
		if err := os.WriteFile(fname, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		return fname
	}
	scriptFile := write("session.yaml", testScript)
	configFile := write("pookalam.toml", testConfig)
	pngFile := filepath.Join(dir, "out.png")
	svgFile := filepath.Join(dir, "out.svg")
	pdfFile := filepath.Join(dir, "out.pdf")

	var stderr bytes.Buffer
	err := run([]string{
		"-config", configFile,
		"-script", scriptFile,
		"-png", pngFile,
		"-svg", svgFile,
		"-pdf", pdfFile,
	}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "shapes=2") {
		t.Errorf("log output lacks shape count:\n%s", stderr.String())
	}

	f, err := os.Open(pngFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 {
		t.Errorf("PNG size %v, want 200 pixels", b)
	}

	svg, err := os.ReadFile(svgFile)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(svg), "<path "); n != 12 {
		t.Errorf("SVG has %d paths, want 12", n)
	}

	if fi, err := os.Stat(pdfFile); err != nil || fi.Size() == 0 {
		t.Errorf("PDF not written: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("steps: [{action: select, shape: 0}]"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{
		{},
		{"-script", filepath.Join(dir, "missing.yaml")},
		{"-script", bad},
		{"-script", bad, "extra"},
		{"-no-such-flag"},
	} {
		var stderr bytes.Buffer
		if err := run(args, &stderr); err == nil {
			t.Errorf("%q: no error", args)
		}
	}
}
