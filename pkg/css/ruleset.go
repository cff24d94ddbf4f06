package css

import (
	"strings"

	dcss "github.com/aymerick/douceur/css"
)

// Entry is one stylesheet collection item: Raw, *StyleSheet or *RuleSet.
type Entry interface {
	isEntry()
}

// Raw is opaque, pre-formed CSS text.
type Raw string

func (Raw) isEntry() {}

// RuleSet maps selectors to style sources, in insertion order.
type RuleSet struct {
	selectors []string
	sources   map[string]Source
}

// NewRuleSet returns an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{sources: make(map[string]Source)}
}

// Add sets the source for selector.
func (rs *RuleSet) Add(selector string, src Source) *RuleSet {
	if rs.sources == nil {
		rs.sources = make(map[string]Source)
	}
	if _, ok := rs.sources[selector]; !ok {
		rs.selectors = append(rs.selectors, selector)
	}
	rs.sources[selector] = src
	return rs
}

// Selectors returns the selectors in insertion order.
func (rs *RuleSet) Selectors() []string {
	out := make([]string, len(rs.selectors))
	copy(out, rs.selectors)
	return out
}

// Source returns the style source for selector.
func (rs *RuleSet) Source(selector string) Source {
	return rs.sources[selector]
}

func (*RuleSet) isEntry() {}

// DisplayNone is the visibility override placed in a view's display sheet.
var DisplayNone = renderRule(":host", []*dcss.Declaration{
	{Property: "display", Value: "none", Important: true},
})

// RenderRuleSet renders one block per selector. Declarations whose value is
// not a non-empty string are omitted; a selector left with none renders
// nothing.
func RenderRuleSet(rs *RuleSet) string {
	if rs == nil {
		return ""
	}
	var blocks []string
	for _, sel := range rs.selectors {
		var decls []*dcss.Declaration
		for _, d := range Enumerate(rs.sources[sel]) {
			v, ok := d.StringValue()
			if !ok || v == "" {
				continue
			}
			decls = append(decls, &dcss.Declaration{Property: NormalizeName(d.Name), Value: v})
		}
		if block := renderRule(sel, decls); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n")
}

// RenderEntries renders a stylesheet collection to texts in order. Empty
// results and nil entries are dropped.
func RenderEntries(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		var text string
		switch v := e.(type) {
		case Raw:
			text = string(v)
		case *StyleSheet:
			if v != nil {
				text = v.Text()
			}
		case *RuleSet:
			text = RenderRuleSet(v)
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

func renderRule(selector string, decls []*dcss.Declaration) string {
	if selector == "" || len(decls) == 0 {
		return ""
	}
	rule := dcss.NewRule(dcss.QualifiedRule)
	rule.Prelude = selector
	rule.Selectors = []string{selector}
	rule.Declarations = decls
	return rule.String()
}
