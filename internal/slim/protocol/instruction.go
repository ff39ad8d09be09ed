package protocol

import (
	"errors"
	"fmt"

	"github.com/killertux/goslim/internal/slim/codec"
)

// Wire operation words.
const (
	opImport        = "import"
	opMake          = "make"
	opCall          = "call"
	opCallAndAssign = "callAndAssign"
	opAssign        = "assign"
)

var ErrMalformedInstruction = errors.New("protocol: malformed instruction")

// Instruction is one operation of an instruction batch. Instructions are
// immutable once constructed.
type Instruction interface {
	InstructionID() Id
	row() []string
}

type Import struct {
	ID   Id
	Path string
}

type Make struct {
	ID       Id
	Instance string
	Class    string
	Args     []string
}

type Call struct {
	ID       Id
	Instance string
	Function string
	Args     []string
}

type CallAndAssign struct {
	ID       Id
	Symbol   string
	Instance string
	Function string
	Args     []string
}

type Assign struct {
	ID     Id
	Symbol string
	Value  string
}

func (i Import) InstructionID() Id        { return i.ID }
func (m Make) InstructionID() Id          { return m.ID }
func (c Call) InstructionID() Id          { return c.ID }
func (c CallAndAssign) InstructionID() Id { return c.ID }
func (a Assign) InstructionID() Id        { return a.ID }

func (i Import) row() []string {
	return []string{string(i.ID), opImport, i.Path}
}

func (m Make) row() []string {
	return append([]string{string(m.ID), opMake, m.Instance, m.Class}, m.Args...)
}

func (c Call) row() []string {
	return append([]string{string(c.ID), opCall, c.Instance, c.Function}, c.Args...)
}

func (c CallAndAssign) row() []string {
	return append([]string{string(c.ID), opCallAndAssign, c.Symbol, c.Instance, c.Function}, c.Args...)
}

func (a Assign) row() []string {
	return []string{string(a.ID), opAssign, a.Symbol, a.Value}
}

// EncodeInstructions returns the wire frame for one instruction batch.
func EncodeInstructions(batch []Instruction) string {
	items := make([]codec.Node, len(batch))
	for i, instr := range batch {
		row := instr.row()
		fields := make([]codec.Node, len(row))
		for j, field := range row {
			fields[j] = codec.Scalar(field)
		}
		items[i] = codec.List(fields...)
	}
	return codec.List(items...).Encode()
}

// instructionFromRow rebuilds an instruction from its decoded wire row.
func instructionFromRow(row []string) (Instruction, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("%w: expected id and operation", ErrMalformedInstruction)
	}
	id := Id(row[0])
	op := row[1]
	rest := row[2:]
	switch op {
	case opImport:
		if len(rest) < 1 {
			return nil, fmt.Errorf("%w: import needs a path", ErrMalformedInstruction)
		}
		return Import{ID: id, Path: rest[0]}, nil
	case opMake:
		if len(rest) < 2 {
			return nil, fmt.Errorf("%w: make needs instance and class", ErrMalformedInstruction)
		}
		return Make{ID: id, Instance: rest[0], Class: rest[1], Args: rest[2:]}, nil
	case opCall:
		if len(rest) < 2 {
			return nil, fmt.Errorf("%w: call needs instance and function", ErrMalformedInstruction)
		}
		return Call{ID: id, Instance: rest[0], Function: rest[1], Args: rest[2:]}, nil
	case opCallAndAssign:
		if len(rest) < 3 {
			return nil, fmt.Errorf("%w: callAndAssign needs symbol, instance and function", ErrMalformedInstruction)
		}
		return CallAndAssign{ID: id, Symbol: rest[0], Instance: rest[1], Function: rest[2], Args: rest[3:]}, nil
	case opAssign:
		if len(rest) < 2 {
			return nil, fmt.Errorf("%w: assign needs symbol and value", ErrMalformedInstruction)
		}
		return Assign{ID: id, Symbol: rest[0], Value: rest[1]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrMalformedInstruction, op)
	}
}
