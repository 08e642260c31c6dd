package testutil

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// AA is an abstract dependency: it can be defined but not instantiated.
type AA interface {
	Name() string
}

// AAI implements AA.
type AAI struct{}

func (AAI) Name() string { return "aai" }

// A has no dependencies and is built from its zero value.
type A struct {
	ID string
}

func NewA() *A {
	return &A{ID: uuid.NewString()}
}

// B depends on A.
type B struct {
	A *A
}

func NewB(a *A) *B {
	return &B{A: a}
}

// C depends on B and has a scalar parameter that needs a default.
type C struct {
	B     *B
	Limit int
}

func NewC(b *B, limit int) *C {
	return &C{B: b, Limit: limit}
}

// D depends on A and on the abstract AA.
type D struct {
	A  *A
	AA AA
}

func NewD(a *A, aa AA) *D {
	return &D{A: a, AA: aa}
}

// Self depends on itself.
type Self struct {
	Next *Self
}

func NewSelf(next *Self) *Self {
	return &Self{Next: next}
}

// Ping and Pong depend on each other.
type Ping struct{ Pong *Pong }
type Pong struct{ Ping *Ping }

func NewPing(p *Pong) *Ping { return &Ping{Pong: p} }
func NewPong(p *Ping) *Pong { return &Pong{Ping: p} }

// Mailer is an optional dependency that is usually not registered.
type Mailer interface {
	Send(to string) error
}

// Notifier has an optional Mailer followed by a required B and a timeout.
type Notifier struct {
	Mailer  Mailer
	B       *B
	Timeout time.Duration
}

func NewNotifier(m Mailer, b *B, timeout time.Duration) *Notifier {
	return &Notifier{Mailer: m, B: b, Timeout: timeout}
}

// Failing always fails to construct.
type Failing struct{}

func NewFailing() (*Failing, error) {
	return nil, ErrConstructor
}

// Panicking panics during construction.
type Panicking struct{}

func NewPanicking() *Panicking {
	panic("boom")
}

// Greeter is what ExampleProducer produces.
type Greeter struct{}

func (Greeter) Test() string { return "test" }

// ExampleProducer produces a fresh Greeter on every call.
type ExampleProducer struct {
	Calls int
}

func (p *ExampleProducer) Produce() (any, error) {
	p.Calls++
	return &Greeter{}, nil
}
