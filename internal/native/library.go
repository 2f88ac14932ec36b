package native

import (
	"github.com/sparvlang/sparv/internal/config"
	"github.com/sparvlang/sparv/internal/evaluator"
	"github.com/sparvlang/sparv/internal/resolver"
	"github.com/sparvlang/sparv/internal/typesystem"
)

// Library bundles every host-provided name: global callables, native
// classes and the ARGV super-global. One Library instance backs one
// interpreter; ARGV state is per-instance.
type Library struct {
	callables map[string]*Callable
	objects   map[string]evaluator.Object
	classes   map[string]typesystem.Type
	supers    map[string]typesystem.Type
}

// NewLibrary assembles the host surface. args seeds ARGV.
func NewLibrary(args []string) *Library {
	lib := &Library{
		callables: make(map[string]*Callable),
		objects:   make(map[string]evaluator.Object),
		classes:   make(map[string]typesystem.Type),
		supers:    make(map[string]typesystem.Type),
	}

	for _, c := range builtinCallables() {
		lib.callables[c.Name()] = c
	}

	for _, class := range []*evaluator.HostObject{
		newBase64Class(),
		newMathClass(),
		newDBClass(),
	} {
		lib.objects[class.Name] = class
		lib.classes[class.Name] = typesystem.Host{Name: class.Name}
	}

	argv := newArgvObject(args)
	lib.objects[config.ArgvName] = argv
	lib.supers[config.ArgvName] = typesystem.Host{Name: config.ArgvName}

	return lib
}

// Directories exposes the host names to the resolver.
func (l *Library) Directories() *resolver.Directories {
	callables := make(map[string]resolver.NativeCallable, len(l.callables))
	for name, c := range l.callables {
		callables[name] = c
	}
	return &resolver.Directories{
		Callables:    callables,
		Classes:      l.classes,
		SuperGlobals: l.supers,
	}
}

// RuntimeObjects exposes the host objects and callables to the
// evaluator, keyed by their global lexeme.
func (l *Library) RuntimeObjects() map[string]evaluator.Object {
	objects := make(map[string]evaluator.Object, len(l.objects)+len(l.callables))
	for name, obj := range l.objects {
		objects[name] = obj
	}
	for name, c := range l.callables {
		objects[name] = &evaluator.Builtin{Fn: c}
	}
	return objects
}
