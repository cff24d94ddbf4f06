package css

// Decl is one enumerated (name, value) pair. Value is whatever the source
// holds; only plain strings are ever applied.
type Decl struct {
	Name  string
	Value any
}

// StringValue returns Value when it is a plain string.
func (d Decl) StringValue() (string, bool) {
	s, ok := d.Value.(string)
	return s, ok
}

// Declarations is an insertion-ordered name -> value map. Re-setting an
// existing name keeps its original position.
type Declarations struct {
	keys   []string
	values map[string]any
}

// NewDeclarations returns an empty map.
func NewDeclarations() *Declarations {
	return &Declarations{values: make(map[string]any)}
}

// DeclarationsOf builds a map from alternating name/value arguments.
// A trailing name without a value is ignored.
func DeclarationsOf(pairs ...any) *Declarations {
	d := NewDeclarations()
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		d.Set(name, pairs[i+1])
	}
	return d
}

// Set assigns value to name.
func (d *Declarations) Set(name string, value any) *Declarations {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = value
	return d
}

// Get returns the value for name.
func (d *Declarations) Get(name string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[name]
	return v, ok
}

// Delete removes name.
func (d *Declarations) Delete(name string) {
	if d == nil {
		return
	}
	if _, ok := d.values[name]; !ok {
		return
	}
	delete(d.values, name)
	for i, k := range d.keys {
		if k == name {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (d *Declarations) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the names in insertion order.
func (d *Declarations) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

func (*Declarations) isSource() {}

func (d *Declarations) decls() []Decl {
	if d == nil {
		return nil
	}
	out := make([]Decl, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, Decl{Name: k, Value: d.values[k]})
	}
	return out
}
