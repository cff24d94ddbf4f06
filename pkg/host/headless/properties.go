package headless

// defaultProperties is the recognized inline style vocabulary. user-select
// is only known in prefixed form, as on engines that never shipped the
// unprefixed name.
var defaultProperties = []string{
	"display", "position", "left", "top", "right", "bottom",
	"width", "height", "min-width", "min-height", "max-width", "max-height",
	"margin", "margin-left", "margin-top", "margin-right", "margin-bottom",
	"padding", "padding-left", "padding-top", "padding-right", "padding-bottom",
	"overflow", "overflow-x", "overflow-y",
	"color", "background", "background-color", "background-image",
	"border", "border-color", "border-width", "border-style", "border-radius",
	"box-shadow", "box-sizing", "opacity", "visibility",
	"font", "font-family", "font-size", "font-weight", "font-style",
	"line-height", "text-align", "text-decoration", "white-space",
	"z-index", "cursor", "transform", "transition", "gap",
	"flex", "flex-direction", "flex-wrap", "align-items", "justify-content",
	"grid-template-columns", "grid-template-rows", "grid-area",
	"-webkit-user-select", "-moz-user-select",
	"-webkit-backdrop-filter",
	"-webkit-appearance", "-moz-appearance",
}
