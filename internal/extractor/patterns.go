package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Recognizers holds the name sets the extractor matches against. Matching is
// structural: a bare identifier or the trailing attribute of a dotted
// reference, never resolved through imports, so aliased imports
// (import dspy as d; d.Predict) still match.
type Recognizers struct {
	Builders       map[string]bool
	SignatureBases map[string]bool
	InputFields    map[string]bool
	OutputFields   map[string]bool
}

// DefaultRecognizers returns the recognizer sets for stock DSPy.
func DefaultRecognizers() Recognizers {
	return NewRecognizers(
		[]string{"Predict", "ReAct", "ChainOfThought", "CodeAct", "MultiChainComparison", "ProgramOfThought"},
		[]string{"Signature"},
		[]string{"InputField"},
		[]string{"OutputField"},
	)
}

// NewRecognizers builds recognizer sets from name lists. Empty lists fall
// back to the corresponding default set.
func NewRecognizers(builders, bases, inputs, outputs []string) Recognizers {
	rec := Recognizers{
		Builders:       nameSet(builders),
		SignatureBases: nameSet(bases),
		InputFields:    nameSet(inputs),
		OutputFields:   nameSet(outputs),
	}
	def := Recognizers{}
	if len(rec.Builders) == 0 || len(rec.SignatureBases) == 0 || len(rec.InputFields) == 0 || len(rec.OutputFields) == 0 {
		def = DefaultRecognizers()
	}
	if len(rec.Builders) == 0 {
		rec.Builders = def.Builders
	}
	if len(rec.SignatureBases) == 0 {
		rec.SignatureBases = def.SignatureBases
	}
	if len(rec.InputFields) == 0 {
		rec.InputFields = def.InputFields
	}
	if len(rec.OutputFields) == 0 {
		rec.OutputFields = def.OutputFields
	}
	return rec
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return set
}

// trailingName returns the matchable name of a reference node: the identifier
// itself, or the trailing attribute of a dotted reference (dspy.Predict ->
// "Predict"). Other expression shapes yield "".
func trailingName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return node.Content(source)
	case "attribute":
		if attr := node.ChildByFieldName("attribute"); attr != nil {
			return attr.Content(source)
		}
	}
	return ""
}

// stringLiteral returns the text of a Python string literal node with its
// quotes and prefix stripped. Escape sequences are left verbatim.
func stringLiteral(node *sitter.Node, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	if node.Type() != "string" && node.Type() != "concatenated_string" {
		return "", false
	}
	return unquote(node.Content(source))
}

func unquote(text string) (string, bool) {
	// Strip string prefixes like r"", b"", f"", rb"".
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		i++
	}
	if i > 2 {
		return "", false
	}
	text = text[i:]

	for _, q := range []string{`"""`, `'''`} {
		if strings.HasPrefix(text, q) {
			if len(text) >= 2*len(q) && strings.HasSuffix(text, q) {
				return text[len(q) : len(text)-len(q)], true
			}
			return "", false
		}
	}
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(text, q) {
			if len(text) >= 2 && strings.HasSuffix(text, q) {
				return text[1 : len(text)-1], true
			}
			return "", false
		}
	}
	return "", false
}

// exprText renders an expression as human-readable text: the unquoted value
// for string literals, the verbatim source text otherwise.
func exprText(node *sitter.Node, source []byte) string {
	if s, ok := stringLiteral(node, source); ok {
		return s
	}
	return node.Content(source)
}

// cleanDocstring normalizes a docstring body the way Python's
// inspect.cleandoc does: leading/trailing blank lines are dropped and the
// common leading whitespace of continuation lines is removed.
func cleanDocstring(raw string) string {
	lines := strings.Split(raw, "\n")
	lines[0] = strings.TrimLeft(lines[0], " \t")

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin > 0 {
		for i, line := range lines[1:] {
			if len(line) >= margin {
				lines[i+1] = line[margin:]
			} else {
				lines[i+1] = strings.TrimLeft(line, " \t")
			}
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// namedChildren returns all named children of a node.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	result := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, n.NamedChild(i))
	}
	return result
}
