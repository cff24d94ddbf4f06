package css

// Source is an inline style source: *Declarations or *Style.
type Source interface {
	isSource()
}

// Enumerate returns the (name, value) pairs of src in order. Names are as
// declared; callers normalize. The result is a fresh slice on every call.
func Enumerate(src Source) []Decl {
	switch s := src.(type) {
	case *Declarations:
		return s.decls()
	case *Style:
		return s.decls()
	default:
		return nil
	}
}
