package native

import (
	"encoding/base64"
	"fmt"

	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/typesystem"
)

func base64Encode(args []evaluator.Object) (evaluator.Object, error) {
	str := args[0].(*evaluator.String)
	return &evaluator.String{
		Value: base64.StdEncoding.EncodeToString([]byte(str.Value)),
	}, nil
}

// base64Decode accepts both padded and raw RFC 4648 input.
func base64Decode(args []evaluator.Object) (evaluator.Object, error) {
	str := args[0].(*evaluator.String)
	data, err := base64.StdEncoding.DecodeString(str.Value)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(str.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("Invalid base64 string '%s'", str.Value)
	}
	return &evaluator.String{Value: string(data)}, nil
}

func newBase64Class() *evaluator.HostObject {
	stringParam := []typesystem.Type{typesystem.String}
	return &evaluator.HostObject{
		Name: config.Base64ClassName,
		Methods: map[string]evaluator.NativeInvoker{
			"encode": NewCallable("encode", stringParam, typesystem.String, base64Encode),
			"decode": NewCallable("decode", stringParam, typesystem.String, base64Decode),
		},
	}
}
