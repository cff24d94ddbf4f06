package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Config Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
		Detail:   "elementview.json exists but could not be read.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid config JSON",
		Detail:   "elementview.json is not valid JSON.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or not recognized.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Cannot write config file",
	},

	// ============================================
	// Scene Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryScene,
		Message:  "Cannot read scene document",
	},
	"E201": {
		Category: CategoryScene,
		Message:  "Invalid scene YAML",
		Detail:   "The scene document could not be decoded.",
	},
	"E202": {
		Category: CategoryScene,
		Message:  "Invalid scene element",
		Detail:   "Every element needs an id and a kind, and ids must be unique.",
	},
	"E203": {
		Category: CategoryScene,
		Message:  "Unknown element",
		Detail:   "No element with this id exists in the scene.",
	},

	// ============================================
	// Export Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryExport,
		Message:  "Export encoding failed",
	},
	"E301": {
		Category: CategoryExport,
		Message:  "Export sink failed",
		Detail:   "The encoded target could not be written to its destination.",
	},
	"E302": {
		Category: CategoryExport,
		Message:  "Unsupported export format",
		Detail:   "Supported formats are auto, raster and vector.",
	},

	// ============================================
	// Inspector Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryInspector,
		Message:  "Inspector failed to listen",
	},

	// ============================================
	// CLI Errors (E500-E599)
	// ============================================

	"E500": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
	},
}
