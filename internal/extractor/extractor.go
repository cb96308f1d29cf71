package extractor

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Extractor uses Tree-sitter to parse Python files and extract DSPy
// signature declarations and the variable bindings derived from them.
type Extractor struct {
	parser *sitter.Parser
	rec    Recognizers
}

// FieldKind distinguishes input fields from output fields.
type FieldKind string

const (
	FieldInput  FieldKind = "input"
	FieldOutput FieldKind = "output"
)

// FieldInfo is one named input or output slot of a signature.
type FieldInfo struct {
	Name        string
	Kind        FieldKind
	Annotation  *string
	Description *string
}

// SignatureInfo is a discovered signature: a class subclassing dspy.Signature,
// or an inline "inputs -> outputs" notation string. For inline signatures the
// Name is the trimmed raw notation text itself.
type SignatureInfo struct {
	Name      string
	Inputs    []FieldInfo
	Outputs   []FieldInfo
	Docstring *string
}

// ModuleInfo is a variable bound to a constructed predictor,
// e.g. my_predict = dspy.Predict(MySignature).
type ModuleInfo struct {
	Name      string // variable name, e.g. "my_predict"
	Signature string // signature name, e.g. "MySignature"
	Line      int    // 1-based
	Column    int    // 1-based
}

// PredictionInfo is a variable bound to the result of calling a module
// variable, e.g. result = my_predict(...). Its signature is copied from the
// module as known at the call site.
type PredictionInfo struct {
	Name      string
	Signature string
	Line      int // 1-based
	Column    int // 1-based
}

// FileIntrospection contains everything extracted from a single Python file.
// Each table is keyed by name; a later declaration or binding of the same
// name overwrites the earlier record.
type FileIntrospection struct {
	File        string
	Signatures  map[string]SignatureInfo
	Modules     map[string]ModuleInfo
	Predictions map[string]PredictionInfo
}

func newFileIntrospection(file string) FileIntrospection {
	return FileIntrospection{
		File:        file,
		Signatures:  make(map[string]SignatureInfo),
		Modules:     make(map[string]ModuleInfo),
		Predictions: make(map[string]PredictionInfo),
	}
}

// New creates an Extractor with the default recognizer sets.
func New() *Extractor {
	return NewWithRecognizers(DefaultRecognizers())
}

// NewWithRecognizers creates an Extractor with custom recognizer sets.
func NewWithRecognizers(rec Recognizers) *Extractor {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Extractor{
		parser: parser,
		rec:    rec,
	}
}

// Extract reads and introspects a Python file.
func (e *Extractor) Extract(filePath string) (FileIntrospection, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return newFileIntrospection(filePath), fmt.Errorf("reading file: %w", err)
	}
	return e.ExtractSource(filePath, content), nil
}

// ExtractSource introspects Python source. It never fails: source with syntax
// errors yields the empty result, matching the behavior expected by editors
// running the tool against half-typed files.
func (e *Extractor) ExtractSource(filePath string, source []byte) FileIntrospection {
	res := newFileIntrospection(filePath)

	tree, err := e.parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return res
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		// Invalid source yields the canonical empty result, never a partial one.
		return res
	}

	e.walkTree(root, source, &res)
	return res
}

// walkTree performs one pre-order traversal, dispatching class declarations
// to the signature extractor and assignments to the binding tracker.
// Declaration order matters: signature resolution is declare-before-use.
func (e *Extractor) walkTree(node *sitter.Node, source []byte, res *FileIntrospection) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "class_definition":
		e.extractSignature(node, source, res)
	case "assignment":
		e.trackAssignment(node, source, res)
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.walkTree(node.Child(i), source, res)
	}
}
