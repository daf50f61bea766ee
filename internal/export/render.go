package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"

	"turingregex/internal/regexlib"
)

// WriteDOT writes the DOT source for a DFA or NFA.
func WriteDOT(w io.Writer, g any) error {
	return regexlib.ExportDOT(w, g)
}

// Render lays out DOT source with the embedded Graphviz engine and writes it in format
// (svg, png, jpg).
func Render(ctx context.Context, dot []byte, format string, w io.Writer) error {
	var f graphviz.Format
	switch format {
	case "svg":
		f = graphviz.SVG
	case "png":
		f = graphviz.PNG
	case "jpg", "jpeg":
		f = graphviz.JPG
	default:
		return fmt.Errorf("%w: image %q", ErrUnknownFormat, format)
	}

	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("parse dot: %w", err)
	}
	defer graph.Close()

	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, f, &buf); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// RenderDFA renders a DFA straight to an image.
func RenderDFA(ctx context.Context, d *regexlib.DFA, format string, w io.Writer) error {
	var dot bytes.Buffer
	if err := regexlib.ExportDOT(&dot, d); err != nil {
		return err
	}
	return Render(ctx, dot.Bytes(), format, w)
}
