package css

import "strings"

// ClassPrefix namespaces structural class names.
const ClassPrefix = "bk-"

// vendorPrefixes are tried, in order, when the host does not recognize an
// unprefixed property.
var vendorPrefixes = []string{"-webkit-", "-moz-"}

// NormalizeName replaces '_' with '-'.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// VendorVariants returns the normalized name followed by its vendor
// prefixed forms.
func VendorVariants(name string) []string {
	n := NormalizeName(name)
	variants := make([]string, 0, len(vendorPrefixes)+1)
	variants = append(variants, n)
	for _, p := range vendorPrefixes {
		variants = append(variants, p+n)
	}
	return variants
}

// StructuralClass returns the class derived from an element kind.
func StructuralClass(kind string) string {
	return ClassPrefix + kind
}
