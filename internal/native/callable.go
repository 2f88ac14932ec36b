package native

import (
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// Callable is a host function descriptor plus its implementation. It
// satisfies both the resolver's descriptor interface and the evaluator's
// invoker interface, so one value serves both passes.
type Callable struct {
	name    string
	params  []typesystem.Type
	returns typesystem.Type
	fn      func(args []evaluator.Object) (evaluator.Object, error)
}

// NewCallable builds a descriptor. A nil entry in params accepts any
// argument type; the implementation validates it instead.
func NewCallable(name string, params []typesystem.Type, returns typesystem.Type,
	fn func(args []evaluator.Object) (evaluator.Object, error)) *Callable {
	return &Callable{name: name, params: params, returns: returns, fn: fn}
}

func (c *Callable) Name() string                  { return c.name }
func (c *Callable) ParamTypes() []typesystem.Type { return c.params }
func (c *Callable) ReturnType() typesystem.Type   { return c.returns }

func (c *Callable) Invoke(args []evaluator.Object) (evaluator.Object, error) {
	return c.fn(args)
}
