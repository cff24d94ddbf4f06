// Package scene loads YAML scene documents and builds them into element
// views on a headless surface.
//
// A scene document describes a viewport and a tree of elements:
//
//	viewport: {width: 800, height: 600}
//	devicePixelRatio: 2
//	elements:
//	  - id: plot
//	    kind: plot
//	    sizing: scale_both
//	    rect: {left: 0, top: 0, width: 600, height: 400}
//	    classes: [figure]
//	    styles:
//	      background_color: "#ffeeee"
//	    stylesheets:
//	      - ".figure { border: 1px solid #ccc; }"
//	      - ".title": {font_size: 14px}
//
// Style values must be strings; numbers and other YAML values are kept in
// the model but never applied, like any non-string style value.
package scene
