package restdoc

import (
	"sync"
	"sync/atomic"
)

// Annotation holds operation metadata declared ahead of the handler it
// describes. The metadata is parsed by the first Bind, even when the first
// calls race. Every Bind returns an operation calling its own fn, so one
// package-level Annotation serves any number of handler instances.
//
//	var getUser = restdoc.Declare(
//		restdoc.WithArguments("user_id"),
//		restdoc.WithDoc("Fetch a user.\n@rtype User"),
//	)
//
//	func (u *Users) Operations() []*restdoc.Operation {
//		return []*restdoc.Operation{getUser.MustBind("get", u.Get)}
//	}
//
// Later binds must use the same name and a handler of the same shape.
type Annotation struct {
	cfg  bindConfig
	once sync.Once
	op   atomic.Pointer[Operation]
	err  error
}

// Declare records options for a later Bind.
func Declare(opts ...Option) *Annotation {
	a := &Annotation{}
	for _, opt := range opts {
		opt(&a.cfg)
	}
	return a
}

// Bind binds fn under name. A failed first Bind fails every later one.
func (a *Annotation) Bind(name string, fn any) (*Operation, error) {
	first := false
	a.once.Do(func() {
		first = true
		op, err := bind(name, fn, &a.cfg)
		a.err = err
		if err == nil {
			a.op.Store(op)
		}
	})
	if a.err != nil {
		return nil, a.err
	}
	op := a.op.Load()
	if first {
		return op, nil
	}
	return op.rebind(name, fn)
}

// MustBind is like Bind but panics on error.
func (a *Annotation) MustBind(name string, fn any) *Operation {
	op, err := a.Bind(name, fn)
	if err != nil {
		panic(err)
	}
	return op
}

// Operation returns the operation of the first successful Bind, or nil before it.
func (a *Annotation) Operation() *Operation { return a.op.Load() }
