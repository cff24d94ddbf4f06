// Package css holds the style model consumed by element views: named
// stylesheets, the two interchangeable inline style representations, and
// the pure rendering of selector maps into stylesheet text.
//
// # Style sources
//
// A Source is either a *Declarations (an insertion-ordered name/value map
// whose values may be of any type) or a *Style (a typed record). Enumerate
// walks either form and yields (name, value) pairs; the typed form never
// yields properties of its embedded Base, which are model identity rather
// than visual style.
//
// # Stylesheet entries
//
// An Entry is one of Raw (opaque CSS text), *StyleSheet, or *RuleSet
// (selector -> Source). RenderEntries turns a collection into stylesheet
// texts:
//
//	rs := css.NewRuleSet().Add(".sel", css.NewDeclarations().
//	    Set("color", "red").
//	    Set("bg_color", ""))
//	css.RenderRuleSet(rs) // ".sel {\n  color: red;\n}"
//
// Nothing here parses or validates CSS beyond replacing '_' with '-'.
package css
