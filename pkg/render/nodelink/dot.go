package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
)

// pointsPerInch converts layout pixels to Graphviz inches.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds every Data entry to the node labels.
	// When false, only the name (or ID) is shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT with every node pinned at its
// computed position, so that Graphviz only routes the edges.
//
// Positions are node centers in points with the y axis flipped, which is
// what neato expects with inputscale=72. Edges naming unknown nodes are
// skipped. Connector sides become tail and head ports.
func ToDOT(l graph.Layout, opts Options) string {
	w, h := l.NodeWidth, l.NodeHeight
	if w <= 0 || h <= 0 {
		w, h = layout.DefaultNodeWidth, layout.DefaultNodeHeight
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, fixedsize=true, width=%s, height=%s];\n",
		fmtFloat(w/pointsPerInch), fmtFloat(h/pointsPerInch))
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("\n")

	known := make(map[string]layout.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		if _, dup := known[n.ID]; dup {
			continue
		}
		known[n.ID] = n
		x := n.Position.X + w/2
		y := -(n.Position.Y + h/2)
		fmt.Fprintf(&buf, "  %s [label=%s, pos=\"%s,%s!\"];\n", quoteID(n.ID), quoteLabel(fmtLabel(n, opts.Detailed)), fmtFloat(x), fmtFloat(y))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		src, okS := known[e.Source]
		dst, okT := known[e.Target]
		if !okS || !okT {
			continue
		}
		attrs := []string{"id=" + quoteLabel(e.ID)}
		if p := port(src.SourceSide); p != "" {
			attrs = append(attrs, "tailport="+p)
		}
		if p := port(dst.TargetSide); p != "" {
			attrs = append(attrs, "headport="+p)
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quoteID(e.Source), quoteID(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.Node, detailed bool) string {
	label := n.ID
	if name, ok := n.Data["name"].(string); ok && name != "" {
		label = name
	}
	if !detailed {
		return label
	}

	var parts []string
	for _, k := range slices.Sorted(maps.Keys(n.Data)) {
		if k == "name" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data[k]))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// idEscaper escapes quotes and backslashes for a DOT quoted string.
var idEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// labelEscaper additionally turns line breaks into the \n escape labels use.
var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func quoteID(s string) string { return `"` + idEscaper.Replace(s) + `"` }

func quoteLabel(s string) string { return `"` + labelEscaper.Replace(s) + `"` }

func port(s layout.Side) string {
	switch s {
	case layout.SideTop:
		return "n"
	case layout.SideBottom:
		return "s"
	case layout.SideLeft:
		return "w"
	case layout.SideRight:
		return "e"
	}
	return ""
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using the neato engine,
// which keeps pinned nodes in place.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
