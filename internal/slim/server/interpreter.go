// Package server implements the serving side of the SLIM protocol: the
// instruction interpreter with its session-scoped state, the per-connection
// session loop, and a TCP listener hosting one isolated session per
// connection.
package server

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/rs/zerolog"

	"github.com/killertux/goslim/internal/observability"
	"github.com/killertux/goslim/internal/slim/fixture"
	"github.com/killertux/goslim/internal/slim/protocol"
	"github.com/killertux/goslim/internal/slim/symbols"
)

// libraryPrefix on an instance name selects the library namespace. The
// convention is part of the wire contract.
const libraryPrefix = "library"

type namespace int

const (
	nsInstance namespace = iota
	nsLibrary
)

func namespaceFor(instance string) namespace {
	if strings.HasPrefix(instance, libraryPrefix) {
		return nsLibrary
	}
	return nsInstance
}

// Interpreter executes instruction batches against session-scoped state. One
// interpreter belongs to exactly one session and is never shared.
type Interpreter struct {
	registry  *fixture.Registry
	instances map[string]fixture.Fixture
	libraries map[string]fixture.Fixture
	imports   []string
	symbols   *symbols.Table
	log       zerolog.Logger
}

func NewInterpreter(registry *fixture.Registry, log zerolog.Logger) *Interpreter {
	return &Interpreter{
		registry:  registry,
		instances: make(map[string]fixture.Fixture),
		libraries: make(map[string]fixture.Fixture),
		symbols:   symbols.NewTable(),
		log:       log,
	}
}

// Process executes one batch in order, producing exactly one result per
// instruction. Later instructions observe earlier instructions' effects.
func (in *Interpreter) Process(batch []protocol.Instruction) []protocol.InstructionResult {
	observability.RecordBatch()
	results := make([]protocol.InstructionResult, 0, len(batch))
	for _, instr := range batch {
		res := in.execute(instr)
		exc, failed := res.(protocol.ExceptionResult)
		observability.RecordInstruction(operationName(instr), failed)
		if failed {
			in.log.Debug().
				Str("id", string(instr.InstructionID())).
				Str("operation", operationName(instr)).
				Str("message", exc.Message.Raw()).
				Msg("instruction raised exception")
		}
		results = append(results, res)
	}
	return results
}

func (in *Interpreter) execute(instr protocol.Instruction) protocol.InstructionResult {
	switch v := instr.(type) {
	case protocol.Import:
		in.imports = append(in.imports, v.Path)
		return protocol.OkResult{ID: v.ID}
	case protocol.Make:
		return in.makeInstance(v)
	case protocol.Call:
		res, _, _ := in.invoke(v.ID, v.Instance, v.Function, v.Args)
		return res
	case protocol.CallAndAssign:
		res, value, ok := in.invoke(v.ID, v.Instance, v.Function, v.Args)
		if ok {
			in.symbols.Assign(v.Symbol, value)
		}
		return res
	case protocol.Assign:
		in.symbols.Assign(v.Symbol, v.Value)
		return protocol.OkResult{ID: v.ID}
	default:
		return protocol.ExceptionResult{
			ID:      instr.InstructionID(),
			Message: protocol.NewExceptionMessage("MALFORMED_INSTRUCTION"),
		}
	}
}

func (in *Interpreter) makeInstance(v protocol.Make) protocol.InstructionResult {
	class := in.symbols.Resolve(v.Class)
	ctor, ok := in.registry.Resolve(class, in.imports)
	if !ok {
		return protocol.ExceptionResult{
			ID:      v.ID,
			Message: protocol.NewExceptionMessage("NO CLASS: " + class),
		}
	}
	fx := ctor(in.symbols.ResolveAll(v.Args))
	in.store(namespaceFor(v.Instance), v.Instance, fx)
	return protocol.OkResult{ID: v.ID}
}

// invoke dispatches a method call. The returned string is the value to bind
// on CallAndAssign (empty for void); ok is false for exception outcomes.
func (in *Interpreter) invoke(id protocol.Id, instance, function string, args []string) (protocol.InstructionResult, string, bool) {
	fx, found := in.lookup(namespaceFor(instance), instance)
	if !found {
		return protocol.ExceptionResult{
			ID:      id,
			Message: protocol.NewExceptionMessage("NO_INSTANCE: " + instance),
		}, "", false
	}
	method := strcase.ToSnake(function)
	value, err := fx.ExecuteMethod(method, in.symbols.ResolveAll(args))
	if err != nil {
		// Fixture error types render their own wire message; anything else
		// passes through verbatim.
		return protocol.ExceptionResult{
			ID:      id,
			Message: protocol.NewExceptionMessage(err.Error()),
		}, "", false
	}
	if value == protocol.VoidSentinel {
		return protocol.VoidResult{ID: id}, "", true
	}
	if items, isList := fixture.ParseList(value); isList {
		return protocol.ListResult{ID: id, Values: items}, value, true
	}
	return protocol.StringResult{ID: id, Value: value}, value, true
}

func (in *Interpreter) lookup(ns namespace, name string) (fixture.Fixture, bool) {
	fx, ok := in.table(ns)[name]
	return fx, ok
}

func (in *Interpreter) store(ns namespace, name string, fx fixture.Fixture) {
	in.table(ns)[name] = fx
}

func (in *Interpreter) table(ns namespace) map[string]fixture.Fixture {
	if ns == nsLibrary {
		return in.libraries
	}
	return in.instances
}

func operationName(instr protocol.Instruction) string {
	switch instr.(type) {
	case protocol.Import:
		return "import"
	case protocol.Make:
		return "make"
	case protocol.Call:
		return "call"
	case protocol.CallAndAssign:
		return "callAndAssign"
	case protocol.Assign:
		return "assign"
	default:
		return "unknown"
	}
}
