package profiler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/amosWeiskopf/wordcrawl/pkg/clock"
)

// ErrNoProfiledMethods is returned by Wrap when no method is marked for timing.
var ErrNoProfiledMethods = errors.New("profiler: no profiled methods declared")

// Methods is the set of method names timed by an Interceptor
type Methods map[string]struct{}

// Profiled builds a Methods set from names
func Profiled(names ...string) Methods {
	m := make(Methods, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// Has reports whether method is in the set
func (m Methods) Has(method string) bool {
	_, ok := m[method]
	return ok
}

// Interceptor sits between a decorator and its delegate. Decorators route
// every method through Invoke or Call; only profiled methods are timed.
type Interceptor struct {
	target  string
	methods Methods
	clock   clock.Clock
	state   *State
}

func newInterceptor(delegate any, methods Methods, c clock.Clock, state *State) (*Interceptor, error) {
	if isNil(delegate) {
		return nil, fmt.Errorf("profiler: nil delegate %T", delegate)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w for %T", ErrNoProfiledMethods, delegate)
	}
	return &Interceptor{
		target:  strings.TrimPrefix(fmt.Sprintf("%T", delegate), "*"),
		methods: methods,
		clock:   c,
		state:   state,
	}, nil
}

// Invoke runs fn on behalf of method. The error and any panic from fn reach
// the caller untouched.
func (i *Interceptor) Invoke(method string, fn func() error) error {
	if !i.methods.Has(method) {
		return fn()
	}

	start := i.clock.Now()
	defer func() {
		i.state.Record(i.target, method, i.clock.Now().Sub(start))
	}()
	return fn()
}

// Call is Invoke for methods that return a value
func Call[T any](i *Interceptor, method string, fn func() (T, error)) (T, error) {
	var out T
	err := i.Invoke(method, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
