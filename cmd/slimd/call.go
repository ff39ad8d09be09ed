package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killertux/goslim/internal/slim/client"
	"github.com/killertux/goslim/internal/slim/codec"
	"github.com/killertux/goslim/internal/slim/protocol"
)

func newCallCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "call CLASS METHOD [ARG...]",
		Short: "Make an instance on a running server and call one method",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, method, callArgs := args[0], args[1], args[2:]

			conn, err := client.Dial(addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			makeID, callID := protocol.NewId(), protocol.NewId()
			results, err := conn.SendInstructions([]protocol.Instruction{
				protocol.Make{ID: makeID, Instance: "cli", Class: class},
				protocol.Call{ID: callID, Instance: "cli", Function: method, Args: callArgs},
			})
			if err != nil {
				return err
			}
			for _, res := range results {
				if exc, ok := res.(protocol.ExceptionResult); ok {
					pretty, perr := exc.Message.Pretty()
					if perr != nil {
						pretty = exc.Message.Raw()
					}
					return fmt.Errorf("server exception: %s", pretty)
				}
			}
			for _, res := range results {
				if res.ResultID() == callID {
					fmt.Fprintln(cmd.OutOrStdout(), renderResult(res))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8085", "server address")
	return cmd
}

func renderResult(res protocol.InstructionResult) string {
	switch v := res.(type) {
	case protocol.VoidResult:
		return "(void)"
	case protocol.StringResult:
		return v.Value
	case protocol.ListResult:
		parts := make([]string, len(v.Values))
		for i, item := range v.Values {
			parts[i] = renderNode(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "OK"
	}
}

func renderNode(n codec.Node) string {
	if !n.IsList {
		return n.Text
	}
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		parts[i] = renderNode(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
