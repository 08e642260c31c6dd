package locator

import (
	"strings"
)

// Scope is the caching tier a registration belongs to.
type Scope string

const (
	// Prototype registrations are resolved fresh on every call and never cached.
	Prototype Scope = "PROTOTYPE"

	// Request registrations are cached until ResetRequestScope is called.
	// In a serial request loop this means one instance per serviced request.
	Request Scope = "REQUEST"

	// Global registrations are cached for the lifetime of the container,
	// until Reset is called.
	Global Scope = "GLOBAL"
)

// precedence lists scopes from highest to lowest lookup priority.
var precedence = [...]Scope{Request, Global, Prototype}

// cacheable lists the scopes eligible for instance memoization, highest
// priority first.
var cacheable = [...]Scope{Request, Global}

// Scopes returns every scope in lookup precedence order.
func Scopes() []Scope {
	return append([]Scope(nil), precedence[:]...)
}

// String returns the string representation of the Scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid checks if the scope is one of Prototype, Request or Global.
func (s Scope) IsValid() bool {
	switch s {
	case Prototype, Request, Global:
		return true
	default:
		return false
	}
}

// Cacheable reports whether instances resolved in s are memoized.
func (s Scope) Cacheable() bool {
	return s == Request || s == Global
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// "singleton" is accepted as an alias of Global.
func (s *Scope) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "PROTOTYPE":
		*s = Prototype
	case "REQUEST":
		*s = Request
	case "GLOBAL", "SINGLETON":
		*s = Global
	default:
		return ScopeError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scope) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var str string
	if err := jsonAPI.Unmarshal(data, &str); err != nil {
		return err
	}

	return s.UnmarshalText([]byte(str))
}
