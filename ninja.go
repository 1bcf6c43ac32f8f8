// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fwgen

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"shanhu.io/misc/errcode"
)

const ninjaWidth = 78

// ninjaWriter writes ninja syntax. The first write error sticks and
// stops all later writes.
type ninjaWriter struct {
	w     io.Writer
	width int
	err   error
}

func newNinjaWriter(w io.Writer) *ninjaWriter {
	return &ninjaWriter{w: w, width: ninjaWidth}
}

func (w *ninjaWriter) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *ninjaWriter) newline() { w.write("\n") }

func (w *ninjaWriter) comment(text string) {
	for _, line := range wrapWords(text, w.width-2) {
		w.write("# " + line + "\n")
	}
}

func (w *ninjaWriter) variable(key, value string, indent int) {
	w.line(key+" = "+value, indent)
}

func (w *ninjaWriter) optVariable(key, value string, indent int) {
	if value != "" {
		w.variable(key, value, indent)
	}
}

func (w *ninjaWriter) rule(r *Rule) {
	w.line("rule "+r.Name, 0)
	w.variable("command", r.Command, 1)
	w.optVariable("description", r.Description, 1)
	w.optVariable("depfile", r.Depfile, 1)
	w.optVariable("deps", r.Deps, 1)
}

func (w *ninjaWriter) build(e *Edge) {
	var outs []string
	for _, out := range e.Outs {
		outs = append(outs, escapePath(out))
	}
	words := []string{e.Rule}
	for _, in := range e.Ins {
		words = append(words, escapePath(in))
	}
	w.line(
		"build "+strings.Join(outs, " ")+": "+strings.Join(words, " "), 0,
	)
	for _, v := range e.Vars {
		w.variable(v.Name, v.Value, 1)
	}
}

func countDollarsBefore(s string, i int) int {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '$'; j-- {
		n++
	}
	return n
}

func escaped(s string, i int) bool { return countDollarsBefore(s, i)%2 == 1 }

// line writes text, wrapping it at unescaped spaces when it is wider than
// the writer's width.
func (w *ninjaWriter) line(text string, indent int) {
	leading := strings.Repeat("  ", indent)
	for len(leading)+len(text) > w.width {
		avail := w.width - len(leading) - len(" $")
		if avail < 0 {
			avail = 0
		}

		// Rightmost unescaped space that fits.
		space := avail
		for {
			space = strings.LastIndex(text[:space], " ")
			if space < 0 || !escaped(text, space) {
				break
			}
		}

		// Otherwise, the first unescaped space after that.
		if space < 0 {
			space = avail - 1
			for {
				next := -1
				if space+1 <= len(text) {
					next = strings.Index(text[space+1:], " ")
				}
				if next < 0 {
					space = -1
					break
				}
				space += 1 + next
				if !escaped(text, space) {
					break
				}
			}
		}

		if space < 0 {
			break // cannot break the line
		}
		w.write(leading + text[:space] + " $\n")
		text = text[space+1:]
		leading = strings.Repeat("  ", indent+2)
	}
	w.write(leading + text + "\n")
}

func escapePath(p string) string {
	p = strings.ReplaceAll(p, "$ ", "$$ ")
	p = strings.ReplaceAll(p, " ", "$ ")
	return strings.ReplaceAll(p, ":", "$:")
}

// wrapWords greedily fills lines of at most width columns. Words longer
// than width are kept whole.
func wrapWords(text string, width int) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		if cur == "" {
			cur = word
		} else if len(cur)+1+len(word) <= width {
			cur += " " + word
		} else {
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// Serialize writes the graph as a ninja file.
func Serialize(g *Graph, out io.Writer) error {
	w := newNinjaWriter(out)

	if g.Comment != "" {
		w.comment(g.Comment)
		w.newline()
	}
	if g.RequiredVersion != "" {
		w.variable("ninja_required_version", g.RequiredVersion, 0)
		w.newline()
	}

	for _, v := range g.Vars {
		w.variable(v.Name, v.Value, 0)
	}
	w.newline()

	for _, r := range g.Rules {
		w.rule(r)
		if !r.Compact {
			w.newline()
		}
	}

	// Edges of the same rule are written as one block.
	for i, e := range g.Edges {
		w.build(e)
		if i+1 == len(g.Edges) || g.Edges[i+1].Rule != e.Rule {
			w.newline()
		}
	}
	return w.err
}

// WriteFile checks the graph and writes it into file f. The file is
// replaced as a whole; a failed write leaves the old file unchanged.
func WriteFile(f string, g *Graph) error {
	if err := g.check(); err != nil {
		return errcode.Annotate(err, "check build graph")
	}

	dir, base := filepath.Split(f)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return errcode.Annotate(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Serialize(g, tmp); err != nil {
		tmp.Close()
		return errcode.Annotate(err, "write build graph")
	}
	if err := tmp.Close(); err != nil {
		return errcode.Annotate(err, "close build graph")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errcode.Annotate(err, "chmod build graph")
	}
	if err := os.Rename(tmpName, f); err != nil {
		return errcode.Annotatef(err, "write %s", f)
	}
	return nil
}
