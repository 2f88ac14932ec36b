package native

import (
	"fmt"

	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// newArgvObject wraps the script's CLI arguments as the ARGV
// super-global. pop consumes from the front; len and get observe what
// is left.
func newArgvObject(args []string) *evaluator.HostObject {
	remaining := make([]string, len(args))
	copy(remaining, args)

	pop := func(callArgs []evaluator.Object) (evaluator.Object, error) {
		if len(remaining) == 0 {
			return nil, fmt.Errorf("No arguments left")
		}
		head := remaining[0]
		remaining = remaining[1:]
		return &evaluator.String{Value: head}, nil
	}

	length := func(callArgs []evaluator.Object) (evaluator.Object, error) {
		return &evaluator.Integer{Value: int64(len(remaining))}, nil
	}

	get := func(callArgs []evaluator.Object) (evaluator.Object, error) {
		index, ok := callArgs[0].(*evaluator.Integer)
		if !ok {
			return nil, fmt.Errorf("Cannot pass %s argument as %s parameter to get()",
				callArgs[0].RuntimeType(), typesystem.Int)
		}
		if index.Value < 0 || index.Value >= int64(len(remaining)) {
			return nil, fmt.Errorf("No argument at index %d", index.Value)
		}
		return &evaluator.String{Value: remaining[index.Value]}, nil
	}

	return &evaluator.HostObject{
		Name: config.ArgvName,
		Methods: map[string]evaluator.NativeInvoker{
			"pop": NewCallable("pop", nil, typesystem.String, pop),
			"len": NewCallable("len", nil, typesystem.Int, length),
			"get": NewCallable("get", []typesystem.Type{nil}, typesystem.String, get),
		},
	}
}
