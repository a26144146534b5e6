// Package nodelink renders laid-out family trees as node-link diagrams.
//
// # Overview
//
// People appear as rounded boxes and relationships as arrows. The boxes are
// pinned where the layout engine placed them; Graphviz (the neato engine)
// only draws and routes. Any of the four layout strategies can be rendered.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert the SVG with pkg/render (ToPDF, ToPNG).
//
// # Labels
//
// A node is labelled with Data["name"] when present, otherwise its ID.
// With Detailed set, the remaining Data entries follow, one per line, sorted
// by key.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
