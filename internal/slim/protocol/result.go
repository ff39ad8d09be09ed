package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/killertux/goslim/internal/slim/codec"
)

const okValue = "OK"

var ErrMalformedResult = errors.New("protocol: malformed instruction result")

// InstructionResult is the engine's outcome for one instruction, echoing the
// instruction's id.
type InstructionResult interface {
	ResultID() Id
	node() codec.Node
}

// OkResult reports success with no value.
type OkResult struct {
	ID Id
}

// VoidResult reports a call whose fixture method returned the void sentinel.
type VoidResult struct {
	ID Id
}

// StringResult carries an ordinary value.
type StringResult struct {
	ID    Id
	Value string
}

// ListResult carries a recursive list value.
type ListResult struct {
	ID     Id
	Values []codec.Node
}

// ExceptionResult reports an instruction-scoped failure.
type ExceptionResult struct {
	ID      Id
	Message ExceptionMessage
}

func (r OkResult) ResultID() Id        { return r.ID }
func (r VoidResult) ResultID() Id      { return r.ID }
func (r StringResult) ResultID() Id    { return r.ID }
func (r ListResult) ResultID() Id      { return r.ID }
func (r ExceptionResult) ResultID() Id { return r.ID }

func (r OkResult) node() codec.Node {
	return codec.List(codec.Scalar(string(r.ID)), codec.Scalar(okValue))
}

func (r VoidResult) node() codec.Node {
	return codec.List(codec.Scalar(string(r.ID)), codec.Scalar(VoidSentinel))
}

func (r StringResult) node() codec.Node {
	return codec.List(codec.Scalar(string(r.ID)), codec.Scalar(r.Value))
}

func (r ListResult) node() codec.Node {
	return codec.List(codec.Scalar(string(r.ID)), codec.List(r.Values...))
}

func (r ExceptionResult) node() codec.Node {
	return codec.List(codec.Scalar(string(r.ID)), codec.Scalar(exceptionPrefix+r.Message.Raw()))
}

// EncodeResults returns the wire frame for one result batch.
func EncodeResults(results []InstructionResult) string {
	items := make([]codec.Node, len(results))
	for i, res := range results {
		items[i] = res.node()
	}
	return codec.List(items...).Encode()
}

// resultFromNode rebuilds a result from its decoded [id, value] pair.
func resultFromNode(n codec.Node) (InstructionResult, error) {
	if !n.IsList || len(n.Items) != 2 {
		return nil, fmt.Errorf("%w: expected [id, value] pair", ErrMalformedResult)
	}
	if n.Items[0].IsList {
		return nil, fmt.Errorf("%w: id must be a scalar", ErrMalformedResult)
	}
	id := Id(n.Items[0].Text)
	value := n.Items[1]
	if value.IsList {
		return ListResult{ID: id, Values: value.Items}, nil
	}
	switch {
	case value.Text == okValue:
		return OkResult{ID: id}, nil
	case value.Text == VoidSentinel:
		return VoidResult{ID: id}, nil
	default:
		if raw, ok := strings.CutPrefix(value.Text, exceptionPrefix); ok {
			return ExceptionResult{ID: id, Message: NewExceptionMessage(raw)}, nil
		}
		return StringResult{ID: id, Value: value.Text}, nil
	}
}
