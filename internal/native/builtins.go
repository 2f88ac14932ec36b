package native

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// stdin is shared across readLine calls so buffered bytes survive
// between invocations.
var (
	stdin     *bufio.Reader
	stdinOnce sync.Once
	stdinSrc  io.Reader
)

// SetInput overrides the readLine source. Must be called before the
// first readLine; tests use it to feed scripted input.
func SetInput(r io.Reader) {
	stdinSrc = r
	stdinOnce = sync.Once{}
	stdin = nil
}

func defaultInput() io.Reader { return os.Stdin }

func getStdin() *bufio.Reader {
	stdinOnce.Do(func() {
		src := stdinSrc
		if src == nil {
			src = defaultInput()
		}
		stdin = bufio.NewReader(src)
	})
	return stdin
}

func builtinClock(args []evaluator.Object) (evaluator.Object, error) {
	seconds := float64(time.Now().UnixNano()) / float64(time.Second)
	return &evaluator.Float{Value: seconds}, nil
}

func builtinLen(args []evaluator.Object) (evaluator.Object, error) {
	str, ok := args[0].(*evaluator.String)
	if !ok {
		return nil, fmt.Errorf("Cannot pass %s argument as %s parameter to %s()",
			args[0].RuntimeType(), typesystem.String, config.LenFuncName)
	}
	return &evaluator.Integer{Value: int64(utf8.RuneCountInString(str.Value))}, nil
}

func builtinTypeOf(args []evaluator.Object) (evaluator.Object, error) {
	return &evaluator.String{Value: args[0].RuntimeType().String()}, nil
}

func builtinReadLine(args []evaluator.Object) (evaluator.Object, error) {
	line, err := getStdin().ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return evaluator.NIL, nil
		}
		return nil, err
	}
	line = strings.TrimRight(line, "\r\n")
	return &evaluator.String{Value: line}, nil
}

func builtinCallables() []*Callable {
	return []*Callable{
		NewCallable(config.ClockFuncName, nil, typesystem.Float, builtinClock),
		NewCallable(config.LenFuncName,
			[]typesystem.Type{typesystem.String}, typesystem.Int, builtinLen),
		NewCallable(config.TypeOfFuncName,
			[]typesystem.Type{nil}, typesystem.String, builtinTypeOf),
		NewCallable(config.ReadLineFuncName, nil, typesystem.String, builtinReadLine),
	}
}
