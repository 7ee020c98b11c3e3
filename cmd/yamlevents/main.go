// Command yamlevents drives the scanner→parser pipeline over a YAML
// document and prints its event stream. It is a debugging and
// demonstration harness, not part of the parser's own contract.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yevent/parser/event"
	"github.com/yevent/parser/parser"
)

var jsonOutput bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yamlevents [file]",
		Short: "Print the parse-event stream for a YAML document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit one JSON object per event instead of plain text")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	r, err := openInput(args)
	if err != nil {
		return err
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	p := parser.New(r)
	enc := json.NewEncoder(cmd.OutOrStdout())
	for {
		ev, err := p.NextEvent()
		if err != nil {
			return err
		}
		if jsonOutput {
			if err := enc.Encode(ev); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), describe(ev))
		}
		if ev.Type == event.StreamEnd {
			return nil
		}
	}
}

func openInput(args []string) (io.Reader, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}
	return os.Open(args[0])
}

func describe(ev *event.Event) string {
	switch ev.Type {
	case event.StreamStart:
		return fmt.Sprintf("%s encoding=%s", ev.Type, ev.Encoding)
	case event.DocumentStart:
		return fmt.Sprintf("%s explicit=%v", ev.Type, ev.Explicit)
	case event.Scalar:
		return fmt.Sprintf("%s %q style=%s tag=%q anchor=%q", ev.Type, ev.Value, ev.ScalarStyle(), ev.Tag, ev.Anchor)
	case event.SequenceStart, event.MappingStart:
		return fmt.Sprintf("%s tag=%q anchor=%q implicit=%v", ev.Type, ev.Tag, ev.Anchor, ev.Implicit)
	case event.Alias:
		return fmt.Sprintf("%s *%s", ev.Type, ev.Anchor)
	default:
		return ev.Type.String()
	}
}
