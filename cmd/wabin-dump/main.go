// Command wabin-dump decodes a raw WebAssembly instruction stream, such as
// a function body stripped of its locals, and prints the instruction tree.
//
// Usage: wabin-dump [file]
//
// With no argument the stream is read from stdin. The stream must be a
// well-formed block: instructions followed by an end (0x0b) terminator.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wasmtools/wabin/wasm"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: wabin-dump [file]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "wabin-dump:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var in io.Reader = os.Stdin
	switch len(args) {
	case 0:
	case 1:
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	default:
		return fmt.Errorf("expected at most one file argument, got %d", len(args))
	}

	body, _, err := wasm.DecodeBlock(bufio.NewReader(in))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	dump(w, body, 0)
	return w.Flush()
}

func dump(w io.Writer, body []wasm.Instruction, depth int) {
	indent := strings.Repeat("  ", depth)
	for idx := range body {
		i := &body[idx]
		fmt.Fprintf(w, "%s%s\n", indent, i)
		dump(w, i.Block, depth+1)
		if i.Opcode == wasm.OpcodeIf {
			if len(i.Else) > 0 {
				fmt.Fprintf(w, "%selse\n", indent)
				dump(w, i.Else, depth+1)
			}
			fmt.Fprintf(w, "%send\n", indent)
		} else if len(i.Block) > 0 || i.Opcode == wasm.OpcodeBlock || i.Opcode == wasm.OpcodeLoop {
			fmt.Fprintf(w, "%send\n", indent)
		}
	}
}
