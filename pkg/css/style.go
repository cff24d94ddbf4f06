package css

import (
	"reflect"
	"sync"
)

// Base is the identity every model record carries. Its properties are
// structural and are never enumerated as style.
type Base struct {
	ID   string   `prop:"id"`
	Name string   `prop:"name"`
	Tags []string `prop:"tags"`
}

var (
	baseNamesOnce sync.Once
	baseNames     map[string]struct{}
)

// IsBaseProperty reports whether name (in either '_' or '-' form) belongs
// to the Base namespace.
func IsBaseProperty(name string) bool {
	baseNamesOnce.Do(func() {
		baseNames = make(map[string]struct{})
		t := reflect.TypeOf(Base{})
		for i := 0; i < t.NumField(); i++ {
			baseNames[NormalizeName(t.Field(i).Tag.Get("prop"))] = struct{}{}
		}
	})
	_, ok := baseNames[NormalizeName(name)]
	return ok
}

// Style is the typed inline style record. Empty fields are unset.
type Style struct {
	Base

	Display         string `css:"display"`
	Position        string `css:"position"`
	Left            string `css:"left"`
	Top             string `css:"top"`
	Right           string `css:"right"`
	Bottom          string `css:"bottom"`
	Width           string `css:"width"`
	Height          string `css:"height"`
	MinWidth        string `css:"min_width"`
	MinHeight       string `css:"min_height"`
	MaxWidth        string `css:"max_width"`
	MaxHeight       string `css:"max_height"`
	Margin          string `css:"margin"`
	Padding         string `css:"padding"`
	Overflow        string `css:"overflow"`
	Color           string `css:"color"`
	Background      string `css:"background"`
	BackgroundColor string `css:"background_color"`
	Border          string `css:"border"`
	BorderRadius    string `css:"border_radius"`
	BoxShadow       string `css:"box_shadow"`
	Opacity         string `css:"opacity"`
	Visibility      string `css:"visibility"`
	FontFamily      string `css:"font_family"`
	FontSize        string `css:"font_size"`
	FontWeight      string `css:"font_weight"`
	TextAlign       string `css:"text_align"`
	ZIndex          string `css:"z_index"`
	Cursor          string `css:"cursor"`
	UserSelect      string `css:"user_select"`
	Transform       string `css:"transform"`
	Transition      string `css:"transition"`
	Gap             string `css:"gap"`
	FlexDirection   string `css:"flex_direction"`
	AlignItems      string `css:"align_items"`
	JustifyContent  string `css:"justify_content"`

	// Extra carries properties without a dedicated field.
	Extra *Declarations
}

type styleField struct {
	index int
	name  string
}

var (
	styleFieldsOnce sync.Once
	styleFields     []styleField
)

func fieldsOfStyle() []styleField {
	styleFieldsOnce.Do(func() {
		t := reflect.TypeOf(Style{})
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Anonymous {
				continue
			}
			if name := f.Tag.Get("css"); name != "" {
				styleFields = append(styleFields, styleField{index: i, name: name})
			}
		}
	})
	return styleFields
}

// Set assigns a property by name. Names with a dedicated field update the
// field; anything else goes to Extra.
func (s *Style) Set(name string, value string) *Style {
	v := reflect.ValueOf(s).Elem()
	for _, f := range fieldsOfStyle() {
		if NormalizeName(f.name) == NormalizeName(name) {
			v.Field(f.index).SetString(value)
			return s
		}
	}
	if s.Extra == nil {
		s.Extra = NewDeclarations()
	}
	s.Extra.Set(name, value)
	return s
}

func (*Style) isSource() {}

// decls yields set fields in declaration order, then Extra, skipping any
// name owned by Base.
func (s *Style) decls() []Decl {
	if s == nil {
		return nil
	}
	v := reflect.ValueOf(s).Elem()
	var out []Decl
	for _, f := range fieldsOfStyle() {
		if val := v.Field(f.index).String(); val != "" {
			out = append(out, Decl{Name: f.name, Value: val})
		}
	}
	for _, d := range s.Extra.decls() {
		if IsBaseProperty(d.Name) {
			continue
		}
		out = append(out, d)
	}
	return out
}
