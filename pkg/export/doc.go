// Package export allocates offscreen targets for element exports and
// delivers encoded targets to sinks.
//
// A Target is sized in logical pixels (the element's bounding box). Raster
// targets carry a pixel ratio: the backing image is ratio times larger and
// drawing coordinates are pre-scaled so callers always draw in logical
// units. Vector targets are resolution independent and record the ratio
// only for reference.
//
// Drawing element content is the caller's job; the package only provides
// the canvas (a *gg.Context or a *svg.SVG).
package export
