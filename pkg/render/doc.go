// Package render turns laid-out family trees into pictures.
//
// The [nodelink] subpackage draws people as boxes and relationships as
// arrows, keeping every box exactly where the layout engine put it.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). When it is missing they fail with an UNSUPPORTED error.
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/kintree/pkg/render/nodelink
package render
