package facts

import (
	"github.com/robert-at-pretension-io/dspy-introspect/internal/extractor"
)

// Document is the output contract of a single introspection run. The three
// tables are keyed by signature name, module variable name and prediction
// variable name. Records reference signatures by name rather than embedding
// them; consumers needing a module's shape look it up in Signatures.
type Document struct {
	File        string                   `json:"file"`
	Signatures  map[string]SignatureRow  `json:"signatures"`
	Modules     map[string]ModuleRow     `json:"modules"`
	Predictions map[string]PredictionRow `json:"predictions"`
}

// SignatureRow is one signature with its ordered input and output fields.
// Optional text fields marshal as JSON null when absent.
type SignatureRow struct {
	Name      string     `json:"name"`
	Docstring *string    `json:"docstring"`
	Inputs    []FieldRow `json:"inputs"`
	Outputs   []FieldRow `json:"outputs"`
}

type FieldRow struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Annotation  *string `json:"annotation"`
	Description *string `json:"description"`
}

// ModuleRow is a variable bound to a constructed predictor. Line and Column
// are 1-based.
type ModuleRow struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

// PredictionRow is a variable bound to the result of invoking a module
// variable.
type PredictionRow struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

// EmptyDocument is the canonical empty result: all three tables present and
// empty. Missing files and unparsable source both project to this, keeping
// the consumer contract uniform.
func EmptyDocument(file string) Document {
	return Document{
		File:        file,
		Signatures:  map[string]SignatureRow{},
		Modules:     map[string]ModuleRow{},
		Predictions: map[string]PredictionRow{},
	}
}

// BuildDocument projects extracted introspection tables into the output
// document.
func BuildDocument(file string, res extractor.FileIntrospection) Document {
	doc := EmptyDocument(file)

	for name, sig := range res.Signatures {
		doc.Signatures[name] = SignatureRow{
			Name:      sig.Name,
			Docstring: sig.Docstring,
			Inputs:    fieldRows(sig.Inputs),
			Outputs:   fieldRows(sig.Outputs),
		}
	}
	for name, mod := range res.Modules {
		doc.Modules[name] = ModuleRow{
			Name:      mod.Name,
			Signature: mod.Signature,
			Line:      mod.Line,
			Column:    mod.Column,
		}
	}
	for name, pred := range res.Predictions {
		doc.Predictions[name] = PredictionRow{
			Name:      pred.Name,
			Signature: pred.Signature,
			Line:      pred.Line,
			Column:    pred.Column,
		}
	}

	return doc
}

func fieldRows(fields []extractor.FieldInfo) []FieldRow {
	rows := make([]FieldRow, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, FieldRow{
			Name:        f.Name,
			Kind:        string(f.Kind),
			Annotation:  f.Annotation,
			Description: f.Description,
		})
	}
	return rows
}
