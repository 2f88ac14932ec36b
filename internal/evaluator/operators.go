package evaluator

import (
	"math"
	"math/big"

	"github.com/sparvlang/sparv/internal/ast"
)

func (ev *Evaluator) evalUnaryPrefix(e *ast.UnaryPrefix, env *Environment) Object {
	right := ev.evalExpression(e.Right, env)
	if isError(right) {
		return right
	}
	switch e.Op {
	case "!":
		return nativeBool(!isTruthy(right))
	case "-":
		switch v := right.(type) {
		case *Integer:
			return &Integer{Value: -v.Value}
		case *Float:
			return &Float{Value: -v.Value}
		case *BigInt:
			return &BigInt{Value: new(big.Int).Neg(v.Value)}
		}
		return newError(e.Token.Line, e.Token.Column,
			"Invalid operand %s to operator '-'", right.RuntimeType())
	}
	return newError(e.Token.Line, e.Token.Column,
		"Unknown operator '%s'", e.Op)
}

func (ev *Evaluator) evalBinary(e *ast.Binary, env *Environment) Object {
	left := ev.evalExpression(e.Left, env)
	if isError(left) {
		return left
	}
	right := ev.evalExpression(e.Right, env)
	if isError(right) {
		return right
	}

	switch e.Op {
	case "==":
		return nativeBool(objectsEqual(left, right))
	case "!=":
		return nativeBool(!objectsEqual(left, right))
	}

	ls, lok := left.(*String)
	rs, rok := right.(*String)
	if e.Op == "+" && lok && rok {
		return &String{Value: ls.Value + rs.Value}
	}

	if !isNumeric(left) || !isNumeric(right) {
		return newError(e.Token.Line, e.Token.Column,
			"Invalid operands %s and %s to operator '%s'",
			left.RuntimeType(), right.RuntimeType(), e.Op)
	}

	switch e.Op {
	case ">", ">=", "<", "<=":
		return ev.compareNumbers(e, left, right)
	case "+", "-", "*", "/", "%":
		return ev.arithmetic(e, left, right)
	case "**":
		return ev.power(e, left, right)
	}
	return newError(e.Token.Line, e.Token.Column,
		"Unknown operator '%s'", e.Op)
}

// arithmetic applies + - * / % on two numeric operands. Either float
// operand forces the float path; either big operand forces the big path;
// two machine integers stay on int64.
func (ev *Evaluator) arithmetic(e *ast.Binary, left, right Object) Object {
	if _, ok := left.(*Float); ok {
		return ev.floatArithmetic(e, left, right)
	}
	if _, ok := right.(*Float); ok {
		return ev.floatArithmetic(e, left, right)
	}
	if _, ok := left.(*BigInt); ok {
		return ev.bigArithmetic(e, left, right)
	}
	if _, ok := right.(*BigInt); ok {
		return ev.bigArithmetic(e, left, right)
	}

	l := left.(*Integer).Value
	r := right.(*Integer).Value
	switch e.Op {
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	case "/":
		if r == 0 {
			return newError(e.Token.Line, e.Token.Column, "Division by zero")
		}
		return &Integer{Value: l / r}
	case "%":
		if r == 0 {
			return newError(e.Token.Line, e.Token.Column, "Division by zero")
		}
		return &Integer{Value: l % r}
	}
	return newError(e.Token.Line, e.Token.Column, "Unknown operator '%s'", e.Op)
}

func (ev *Evaluator) floatArithmetic(e *ast.Binary, left, right Object) Object {
	l, _ := toFloat(left)
	r, _ := toFloat(right)
	switch e.Op {
	case "+":
		return &Float{Value: l + r}
	case "-":
		return &Float{Value: l - r}
	case "*":
		return &Float{Value: l * r}
	case "/":
		if r == 0 {
			return newError(e.Token.Line, e.Token.Column, "Division by zero")
		}
		return &Float{Value: l / r}
	case "%":
		if r == 0 {
			return newError(e.Token.Line, e.Token.Column, "Division by zero")
		}
		return &Float{Value: math.Mod(l, r)}
	}
	return newError(e.Token.Line, e.Token.Column, "Unknown operator '%s'", e.Op)
}

func (ev *Evaluator) bigArithmetic(e *ast.Binary, left, right Object) Object {
	l, _ := toBig(left)
	r, _ := toBig(right)
	result := new(big.Int)
	switch e.Op {
	case "+":
		result.Add(l, r)
	case "-":
		result.Sub(l, r)
	case "*":
		result.Mul(l, r)
	case "/":
		if r.Sign() == 0 {
			return newError(e.Token.Line, e.Token.Column, "Division by zero")
		}
		result.Quo(l, r)
	case "%":
		if r.Sign() == 0 {
			return newError(e.Token.Line, e.Token.Column, "Division by zero")
		}
		result.Rem(l, r)
	default:
		return newError(e.Token.Line, e.Token.Column, "Unknown operator '%s'", e.Op)
	}
	return normalizeBig(result)
}

// power follows the float path when either operand is floating-point or
// the exponent is negative; otherwise it raises in big-integer space.
func (ev *Evaluator) power(e *ast.Binary, left, right Object) Object {
	_, lf := left.(*Float)
	_, rf := right.(*Float)
	if lf || rf || isNegative(right) {
		l, _ := toFloat(left)
		r, _ := toFloat(right)
		return &Float{Value: math.Pow(l, r)}
	}
	l, _ := toBig(left)
	r, _ := toBig(right)
	return normalizeBig(new(big.Int).Exp(l, r, nil))
}

func (ev *Evaluator) compareNumbers(e *ast.Binary, left, right Object) Object {
	cmp, ok := numericCompare(left, right)
	if !ok {
		return newError(e.Token.Line, e.Token.Column,
			"Invalid operands %s and %s to operator '%s'",
			left.RuntimeType(), right.RuntimeType(), e.Op)
	}
	switch e.Op {
	case ">":
		return nativeBool(cmp > 0)
	case ">=":
		return nativeBool(cmp >= 0)
	case "<":
		return nativeBool(cmp < 0)
	case "<=":
		return nativeBool(cmp <= 0)
	}
	return newError(e.Token.Line, e.Token.Column, "Unknown operator '%s'", e.Op)
}

// objectsEqual is structural equality. Null equals only null; numbers
// compare numerically across representations; everything else compares
// by value within its own kind.
func objectsEqual(left, right Object) bool {
	if _, ok := left.(*Nil); ok {
		_, rok := right.(*Nil)
		return rok
	}
	if _, ok := right.(*Nil); ok {
		return false
	}
	if isNumeric(left) && isNumeric(right) {
		cmp, ok := numericCompare(left, right)
		return ok && cmp == 0
	}
	switch l := left.(type) {
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	}
	return left == right
}

// numericCompare returns -1, 0 or 1. Mixed float comparisons happen in
// float64; integer against big happens in big-integer space.
func numericCompare(left, right Object) (int, bool) {
	_, lf := left.(*Float)
	_, rf := right.(*Float)
	if lf || rf {
		l, lok := toFloat(left)
		r, rok := toFloat(right)
		if !lok || !rok {
			return 0, false
		}
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		}
		return 0, true
	}
	l, lok := toBig(left)
	r, rok := toBig(right)
	if !lok || !rok {
		return 0, false
	}
	return l.Cmp(r), true
}

func isNumeric(obj Object) bool {
	switch obj.(type) {
	case *Integer, *Float, *BigInt:
		return true
	}
	return false
}

func isNegative(obj Object) bool {
	switch v := obj.(type) {
	case *Integer:
		return v.Value < 0
	case *Float:
		return v.Value < 0
	case *BigInt:
		return v.Value.Sign() < 0
	}
	return false
}

func toFloat(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case *Integer:
		return float64(v.Value), true
	case *Float:
		return v.Value, true
	case *BigInt:
		f, _ := new(big.Float).SetInt(v.Value).Float64()
		return f, true
	}
	return 0, false
}

func toBig(obj Object) (*big.Int, bool) {
	switch v := obj.(type) {
	case *Integer:
		return big.NewInt(v.Value), true
	case *BigInt:
		return v.Value, true
	}
	return nil, false
}

// normalizeBig hands back a machine integer whenever the result still
// fits one, so arithmetic only widens when the value demands it.
func normalizeBig(v *big.Int) Object {
	if v.IsInt64() {
		return &Integer{Value: v.Int64()}
	}
	return &BigInt{Value: v}
}
