package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/aglyzov/go-amt/strtab"
)

var goSourceTemplate = template.Must(template.New("source").Parse(`// Code generated by amtc; DO NOT EDIT.

package {{.Package}}

import "github.com/aglyzov/go-amt/amt"

// {{.Func}} returns the {{.Kind}} image of a {{.Words}} word dictionary.
func {{.Func}}() (*amt.{{.Type}}, error) {
	return amt.Load{{.Type}}({{.Args}})
}
{{range .Arrays}}
var {{.Name}} = []uint32{
{{- range .Lines}}
	{{.}}
{{- end}}
}
{{end}}`))

type goArray struct {
	Name  string
	Lines []string
}

type goSource struct {
	Package string
	Func    string
	Kind    string
	Type    string
	Args    string
	Words   int
	Arrays  []goArray
}

// writeGoSource emits the image as Go source: the word arrays and a function
// loading them.
func writeGoSource(w io.Writer, pkg string, tables *strtab.Tables, kind string) error {
	src := goSource{
		Package: pkg,
		Kind:    kind,
		Words:   tables.Pointer.Len(),
	}

	switch kind {
	case "flat":
		src.Func, src.Type, src.Args = "FlatImage", "Flat", "flatWords"
		src.Arrays = []goArray{
			{"flatWords", goLines(tables.Flat.Words())},
		}
	case "split":
		src.Func, src.Type, src.Args = "SplitImage", "Split", "splitMasks, splitEdges"
		src.Arrays = []goArray{
			{"splitMasks", goLines(tables.Split.Masks())},
			{"splitEdges", goLines(tables.Split.Edges())},
		}
	default:
		return fmt.Errorf("unknown image kind %q", kind)
	}

	var buf bytes.Buffer

	if err := goSourceTemplate.Execute(&buf, src); err != nil {
		return err
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("generated invalid Go source: %w", err)
	}

	_, err = w.Write(formatted)

	return err
}

// goLines renders the words as hex literals, eight per line.
func goLines(words []uint32) []string {
	const perLine = 8

	lines := make([]string, 0, (len(words)+perLine-1)/perLine)

	for start := 0; start < len(words); start += perLine {
		var line strings.Builder

		for i, word := range words[start:min(start+perLine, len(words))] {
			if i > 0 {
				line.WriteByte(' ')
			}
			fmt.Fprintf(&line, "0x%08x,", word)
		}

		lines = append(lines, line.String())
	}

	return lines
}
