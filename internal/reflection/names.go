package reflection

import "reflect"

// TypeName returns the fully qualified name of t. Named types are rendered as
// "import/path.Name"; pointers are prefixed with "*". Unnamed types fall back
// to reflect's own formatting.
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Kind() == reflect.Pointer {
		return "*" + TypeName(t.Elem())
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// IsClassLike reports whether t can name an autowirable dependency: a named
// interface, a named struct, or a pointer to a named struct.
func IsClassLike(t reflect.Type) bool {
	if t == nil {
		return false
	}

	switch t.Kind() {
	case reflect.Interface:
		return t.Name() != "" && t != errType
	case reflect.Struct:
		return t.Name() != ""
	case reflect.Pointer:
		e := t.Elem()
		return e.Kind() == reflect.Struct && e.Name() != ""
	default:
		return false
	}
}

// IsAbstract reports whether values of t cannot be built without a constructor.
func IsAbstract(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface
}

// Instantiate builds the zero value of t. Pointers to structs get a freshly
// allocated struct.
func Instantiate(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem())
	}

	return reflect.New(t).Elem()
}

// IsNil reports whether v is nil or holds a typed nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
