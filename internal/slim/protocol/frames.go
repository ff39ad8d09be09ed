package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/killertux/goslim/internal/slim/codec"
)

const byePayload = "bye"

var ErrUnexpectedFrame = errors.New("protocol: unexpected frame")

// WriteBye writes the distinguished teardown frame.
func WriteBye(w io.Writer) error {
	_, err := io.WriteString(w, codec.EncodeString(byePayload))
	return err
}

// ReadInstructionBatch reads one top-level frame on the serving side. The
// first payload byte selects between an instruction list and the bye frame;
// bye terminates the session and produces no result frame.
func ReadInstructionBatch(r *codec.Reader) (batch []Instruction, bye bool, err error) {
	if _, err := r.ReadLength(); err != nil {
		return nil, false, err
	}
	first, err := r.ReadByte()
	if err != nil {
		return nil, false, err
	}
	switch first {
	case '[':
		count, err := r.ReadLength()
		if err != nil {
			return nil, false, err
		}
		batch := make([]Instruction, 0, count)
		for i := 0; i < count; i++ {
			row, err := r.ReadStringList()
			if err != nil {
				return nil, false, err
			}
			if err := r.ExpectByte(':'); err != nil {
				return nil, false, err
			}
			instr, err := instructionFromRow(row)
			if err != nil {
				return nil, false, err
			}
			batch = append(batch, instr)
		}
		if err := r.ExpectByte(']'); err != nil {
			return nil, false, err
		}
		return batch, false, nil
	case 'b':
		for _, want := range []byte("ye") {
			if err := r.ExpectByte(want); err != nil {
				return nil, false, err
			}
		}
		return nil, true, nil
	default:
		return nil, false, fmt.Errorf("%w: first payload byte %q", ErrUnexpectedFrame, string(first))
	}
}

// ReadResultBatch reads one result frame on the connecting side.
func ReadResultBatch(r *codec.Reader) ([]InstructionResult, error) {
	if _, err := r.ReadLength(); err != nil {
		return nil, err
	}
	if err := r.ExpectByte('['); err != nil {
		return nil, err
	}
	count, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	results := make([]InstructionResult, 0, count)
	for i := 0; i < count; i++ {
		node, err := r.ReadNode()
		if err != nil {
			return nil, err
		}
		if err := r.ExpectByte(':'); err != nil {
			return nil, err
		}
		res, err := resultFromNode(node)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := r.ExpectByte(']'); err != nil {
		return nil, err
	}
	return results, nil
}
