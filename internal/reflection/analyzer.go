package reflection

import (
	"fmt"
	"reflect"
	"sync"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Analyzer performs reflection-based analysis of constructors.
// It caches analysis results keyed by function pointer.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[uintptr]*ConstructorInfo
}

// ConstructorInfo contains analyzed information about a constructor function.
type ConstructorInfo struct {
	Type           reflect.Type  // function type
	Value          reflect.Value // function value
	Result         reflect.Type  // first return value
	Parameters     []ParameterInfo
	HasErrorReturn bool // second return value is error
}

// ParameterInfo describes a positional constructor parameter.
type ParameterInfo struct {
	Type      reflect.Type
	Index     int
	TypeName  string
	ClassLike bool // interface, struct or pointer to struct
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		cache: make(map[uintptr]*ConstructorInfo),
	}
}

// Analyze analyzes a constructor function.
//
// Accepted shapes are func(...) T and func(...) (T, error). Variadic
// constructors are rejected because positional autowiring cannot fill them.
func (a *Analyzer) Analyze(constructor any) (*ConstructorInfo, error) {
	if constructor == nil {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	val := reflect.ValueOf(constructor)
	if val.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %T", constructor)
	}

	if val.IsNil() {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	cacheKey := val.Pointer()

	a.mu.RLock()
	if cached, ok := a.cache[cacheKey]; ok && cached.Type == val.Type() {
		a.mu.RUnlock()
		// Closures share a code pointer, so the value is rebound.
		info := *cached
		info.Value = val
		return &info, nil
	}
	a.mu.RUnlock()

	fnType := val.Type()
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("variadic constructor %v is not supported", fnType)
	}

	info := &ConstructorInfo{
		Type:  fnType,
		Value: val,
	}

	if err := a.analyzeReturns(info); err != nil {
		return nil, err
	}

	info.Parameters = make([]ParameterInfo, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)
		info.Parameters[i] = ParameterInfo{
			Type:      paramType,
			Index:     i,
			TypeName:  TypeName(paramType),
			ClassLike: IsClassLike(paramType),
		}
	}

	a.mu.Lock()
	a.cache[cacheKey] = info
	a.mu.Unlock()

	return info, nil
}

func (a *Analyzer) analyzeReturns(info *ConstructorInfo) error {
	fnType := info.Type

	switch fnType.NumOut() {
	case 1:
		if implementsError(fnType.Out(0)) {
			return fmt.Errorf("constructor %v only returns error", fnType)
		}
	case 2:
		if !implementsError(fnType.Out(1)) {
			return fmt.Errorf("constructor %v: second return value must be error, got %v", fnType, fnType.Out(1))
		}
		info.HasErrorReturn = true
	default:
		return fmt.Errorf("constructor %v must return (T) or (T, error)", fnType)
	}

	info.Result = fnType.Out(0)
	return nil
}

func implementsError(t reflect.Type) bool {
	return t.Implements(errType)
}
