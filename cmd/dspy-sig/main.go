package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/robert-at-pretension-io/dspy-introspect/internal/config"
	"github.com/robert-at-pretension-io/dspy-introspect/internal/facts"
	"github.com/robert-at-pretension-io/dspy-introspect/internal/introspect"
	"github.com/robert-at-pretension-io/dspy-introspect/internal/validator"
)

func main() {
	output := flag.String("output", "", "write document JSON to file (default: stdout)")
	flag.StringVar(output, "o", "", "write document JSON to file (shorthand)")
	configPath := flag.String("config", "", "explicit config file (default: search dspy_introspect.json)")
	deltaFrom := flag.String("delta-from", "", "previous document JSON to compute delta from")
	deltaOut := flag.String("delta-out", "", "write delta JSON to file (requires --delta-from)")
	validate := flag.Bool("validate", false, "validate the document against the CUE schema before writing")
	verbose := flag.Bool("verbose", false, "diagnostic output on stderr")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dspy-sig [--output file] [--config file] [--delta-from prev.json --delta-out delta.json] [--validate] <file.py>")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	runner := introspect.NewWithConfig(cfg)
	runner.Verbose = *verbose

	doc, err := runner.Run(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		v, err := validator.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building validator: %v\n", err)
			os.Exit(1)
		}
		if err := v.Validate(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: document violates schema: %v\n", err)
			os.Exit(1)
		}
	}

	if *output != "" {
		if err := writeJSON(*output, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing document: %v\n", err)
			os.Exit(1)
		}
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding document: %v\n", err)
			os.Exit(1)
		}
	}

	if *deltaFrom != "" || *deltaOut != "" {
		if *deltaFrom == "" || *deltaOut == "" {
			fmt.Fprintln(os.Stderr, "Error: --delta-from and --delta-out must be used together")
			os.Exit(1)
		}
		prev, err := readDocument(*deltaFrom)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading delta-from: %v\n", err)
			os.Exit(1)
		}
		delta := facts.ComputeDelta(prev, doc)
		if err := writeJSON(*deltaOut, delta); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing delta: %v\n", err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func readDocument(path string) (facts.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return facts.Document{}, err
	}
	defer func() { _ = f.Close() }()

	var doc facts.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return facts.Document{}, err
	}
	return doc, nil
}

func writeJSON(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
