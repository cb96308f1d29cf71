// Dumps the Tree-sitter parse tree of a Python file. Useful when a construct
// isn't extracted and you need to see which node shapes the grammar actually
// produces before touching the extractor.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: dspy-debug <file.py>")
		os.Exit(1)
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing: %v\n", err)
		os.Exit(1)
	}
	defer tree.Close()

	dump(tree.RootNode(), source, 0)
}

func dump(n *sitter.Node, source []byte, depth int) {
	if n == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	start := n.StartPoint()
	if n.IsNamed() {
		text := n.Content(source)
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		fmt.Printf("%s%s [%d:%d] %q\n", indent, n.Type(), start.Row+1, start.Column+1, text)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		dump(n.Child(i), source, depth+1)
	}
}
