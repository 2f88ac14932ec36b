package native

import (
	"fmt"
	"math"
	"math/big"

	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// asFloat accepts any numeric object; the Math methods operate in
// float64 regardless of the argument's static type.
func asFloat(name string, arg evaluator.Object) (float64, error) {
	switch v := arg.(type) {
	case *evaluator.Integer:
		return float64(v.Value), nil
	case *evaluator.Float:
		return v.Value, nil
	case *evaluator.BigInt:
		f, _ := new(big.Float).SetInt(v.Value).Float64()
		return f, nil
	}
	return 0, fmt.Errorf("Cannot pass %s argument as %s parameter to %s()",
		arg.RuntimeType(), typesystem.Float, name)
}

func mathAbs(args []evaluator.Object) (evaluator.Object, error) {
	v, err := asFloat("abs", args[0])
	if err != nil {
		return nil, err
	}
	return &evaluator.Float{Value: math.Abs(v)}, nil
}

func mathPow(args []evaluator.Object) (evaluator.Object, error) {
	base, err := asFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := asFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	return &evaluator.Float{Value: math.Pow(base, exp)}, nil
}

func mathSqrt(args []evaluator.Object) (evaluator.Object, error) {
	v, err := asFloat("sqrt", args[0])
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, fmt.Errorf("Cannot take square root of negative number")
	}
	return &evaluator.Float{Value: math.Sqrt(v)}, nil
}

func mathFloor(args []evaluator.Object) (evaluator.Object, error) {
	v, err := asFloat("floor", args[0])
	if err != nil {
		return nil, err
	}
	return &evaluator.Float{Value: math.Floor(v)}, nil
}

func newMathClass() *evaluator.HostObject {
	anyNum := []typesystem.Type{nil}
	return &evaluator.HostObject{
		Name: config.MathClassName,
		Methods: map[string]evaluator.NativeInvoker{
			"abs":   NewCallable("abs", anyNum, typesystem.Float, mathAbs),
			"pow":   NewCallable("pow", []typesystem.Type{nil, nil}, typesystem.Float, mathPow),
			"sqrt":  NewCallable("sqrt", anyNum, typesystem.Float, mathSqrt),
			"floor": NewCallable("floor", anyNum, typesystem.Float, mathFloor),
		},
	}
}
