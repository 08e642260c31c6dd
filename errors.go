package locator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/locator/internal/configtree"
	"github.com/junioryono/locator/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Typed errors below wrap these so callers can match with errors.Is.

var (
	// ErrNotFound is the root of every strict lookup miss.
	ErrNotFound = errors.New("service not found")

	// ErrContainer is the root of every configuration or resolution misuse.
	ErrContainer = errors.New("container error")

	ErrSelfProducer         = errors.New("producer is itself")
	ErrProducerReturnedSelf = errors.New("producer returned itself")
	ErrNotInstantiable      = errors.New("type is not instantiable")
	ErrSelfDependency       = errors.New("type depends on itself")
	ErrMaxDepth             = errors.New("maximum resolution depth exceeded")

	ErrConstructorNil = errors.New("constructor cannot be nil")
)

var (
	_ error = ScopeError{}
	_ error = NotFoundError{}
	_ error = ContainerError{}
	_ error = ResolutionError{}
	_ error = InvalidProducerError{}
	_ error = TypeDefinitionError{}
	_ error = ConstructorInvocationError{}
	_ error = ConstructorPanicError{}
	_ error = ModuleError{}
	_ error = ConfigKeyExistsError{}
	_ error = CircularDependencyError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// CircularDependencyError reports a key that was re-entered while it was
// still being resolved, or a cycle among type definitions.
type CircularDependencyError = graph.CircularDependencyError

// ConfigKeyExistsError reports a config write that would descend through an
// existing scalar or nil value.
type ConfigKeyExistsError = configtree.KeyExistsError

// ScopeError indicates an unknown scope name.
type ScopeError struct {
	Value string
}

func (e ScopeError) Error() string {
	return fmt.Sprintf("invalid scope: %q", e.Value)
}

// NotFoundError is returned by strict lookups that resolve to nothing.
type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("service not found: %s", e.Key)
}

func (e NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ContainerError reports a configuration or resolution misuse for Key.
// Cause carries the specific sentinel or typed error.
type ContainerError struct {
	Key   string
	Cause error
}

func (e ContainerError) Error() string {
	switch {
	case errors.Is(e.Cause, ErrSelfProducer):
		return fmt.Sprintf("the %s producer is itself", e.Key)
	case errors.Is(e.Cause, ErrProducerReturnedSelf):
		return fmt.Sprintf("the %s producer returned itself", e.Key)
	case errors.Is(e.Cause, ErrNotInstantiable):
		return fmt.Sprintf("type %s is not instantiable", e.Key)
	case errors.Is(e.Cause, ErrSelfDependency):
		return fmt.Sprintf("type %s depends on itself", e.Key)
	case e.Key == "":
		return fmt.Sprintf("container: %v", e.Cause)
	default:
		return fmt.Sprintf("container: %s: %v", e.Key, e.Cause)
	}
}

func (e ContainerError) Unwrap() []error {
	return []error{ErrContainer, e.Cause}
}

// ResolutionError wraps an error returned by a factory or produce-capable
// producer while resolving Key.
type ResolutionError struct {
	Key   string
	Cause error
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s: %v", e.Key, e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// InvalidProducerError indicates a producer value of an unsupported kind.
type InvalidProducerError struct {
	Key      string
	Producer any
}

func (e InvalidProducerError) Error() string {
	return fmt.Sprintf("invalid producer for %s: unsupported kind %T (want string, Factory or Producer)", e.Key, e.Producer)
}

// TypeDefinitionError indicates a type definition that cannot be registered.
type TypeDefinitionError struct {
	Type   reflect.Type
	Reason string
}

func (e TypeDefinitionError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("invalid type definition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid type definition %s: %s", formatType(e.Type), e.Reason)
}

// ConstructorInvocationError wraps an error returned by a constructor.
type ConstructorInvocationError struct {
	Type  string
	Cause error
}

func (e ConstructorInvocationError) Error() string {
	return fmt.Sprintf("constructor for %s failed: %v", e.Type, e.Cause)
}

func (e ConstructorInvocationError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError captures a panic raised inside a constructor.
type ConstructorPanicError struct {
	Type  string
	Panic any
}

func (e ConstructorPanicError) Error() string {
	return fmt.Sprintf("constructor for %s panicked: %v", e.Type, e.Panic)
}

// ModuleError wraps errors from module registration.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// ========================================
// Error Helpers
// ========================================

// IsNotFound reports whether err is a strict lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsContainerError reports whether err is a configuration or resolution misuse.
func IsContainerError(err error) bool {
	return errors.Is(err, ErrContainer)
}

// IsCircularDependency reports whether err wraps a CircularDependencyError.
func IsCircularDependency(err error) bool {
	var cde CircularDependencyError
	return errors.As(err, &cde)
}

func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
