package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vlaxcs/csvbind"
)

// DumpParams collects the dump subcommand's flags.
type DumpParams struct {
	Schema  string `json:"schema"`  // YAML schema document path
	Output  string `json:"output"`  // json or table
	Verbose bool   `json:"verbose"` // log parse diagnostics
}

var dumpParams *DumpParams

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] FILE",
	Short: "Parse a delimited file against a schema and print its records",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpRun,
}

func init() {
	dumpParams = &DumpParams{}
	dumpCmd.Flags().StringVarP(&dumpParams.Schema, "schema", "s", "", "schema document path (YAML)")
	dumpCmd.Flags().StringVarP(&dumpParams.Output, "output", "o", "table", "output format: table or json")
	dumpCmd.Flags().BoolVarP(&dumpParams.Verbose, "verbose", "v", false, "log parse diagnostics to stderr")
}

// schemaDoc is the YAML shape of a schema document. Exactly one of fields,
// uniform, or slice must be present.
type schemaDoc struct {
	Fields  []string `yaml:"fields"`
	Uniform *struct {
		Kind  string `yaml:"kind"`
		Arity int    `yaml:"arity"`
	} `yaml:"uniform"`
	Slice     string   `yaml:"slice"`
	Header    []string `yaml:"header"`
	Delimiter string   `yaml:"delimiter"`
	Quote     string   `yaml:"quote"`
	HeaderRow int      `yaml:"headerRow"`
	Strict    bool     `yaml:"strict"`
}

func dumpRun(cmd *cobra.Command, args []string) error {
	if dumpParams.Schema == "" {
		return fmt.Errorf("no schema document; pass one with --schema")
	}
	raw, err := os.ReadFile(dumpParams.Schema)
	if err != nil {
		return fmt.Errorf("read schema document: %w", err)
	}
	var doc schemaDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse schema document: %w", err)
	}

	schema, err := buildSchema(doc)
	if err != nil {
		return err
	}
	opts, err := buildOptions(doc)
	if err != nil {
		return err
	}
	if dumpParams.Verbose {
		opts = append(opts, csvbind.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	p, err := csvbind.New(schema, opts...)
	if err != nil {
		return err
	}
	records, err := p.Parse(args[0])
	if err != nil {
		return err
	}

	switch dumpParams.Output {
	case "json":
		return p.InspectJSON(os.Stdout, records)
	case "table":
		fmt.Println(strings.Join(p.Header(), "\t"))
		for _, rec := range records {
			cells := make([]string, 0, len(rec))
			for _, v := range rec {
				cells = append(cells, fmt.Sprintf("%v", v))
			}
			fmt.Println(strings.Join(cells, "\t"))
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", dumpParams.Output)
}

// buildSchema turns a schema document into a dynamic record schema. CLI
// records are plain []any rows in declared field order.
func buildSchema(doc schemaDoc) (csvbind.Schema[[]any], error) {
	var zero csvbind.Schema[[]any]
	modes := 0
	if len(doc.Fields) > 0 {
		modes++
	}
	if doc.Uniform != nil {
		modes++
	}
	if doc.Slice != "" {
		modes++
	}
	if modes != 1 {
		return zero, fmt.Errorf("schema document needs exactly one of fields, uniform, or slice")
	}

	collect := func(r csvbind.Row) []any {
		out := make([]any, 0, r.Len())
		for i := 0; i < r.Len(); i++ {
			out = append(out, r.Value(i))
		}
		return out
	}

	switch {
	case len(doc.Fields) > 0:
		kinds := make([]csvbind.Kind, 0, len(doc.Fields))
		for _, name := range doc.Fields {
			k, err := csvbind.ParseKind(name)
			if err != nil {
				return zero, err
			}
			kinds = append(kinds, k)
		}
		return csvbind.Positional(kinds, collect), nil
	case doc.Uniform != nil:
		k, err := csvbind.ParseKind(doc.Uniform.Kind)
		if err != nil {
			return zero, err
		}
		return csvbind.Uniform(k, doc.Uniform.Arity, collect), nil
	default:
		k, err := csvbind.ParseKind(doc.Slice)
		if err != nil {
			return zero, err
		}
		return csvbind.SliceOf[any](k), nil
	}
}

func buildOptions(doc schemaDoc) ([]csvbind.Option, error) {
	var opts []csvbind.Option
	if len(doc.Header) > 0 {
		opts = append(opts, csvbind.WithHeader(doc.Header...))
	}
	if doc.Delimiter != "" {
		if len(doc.Delimiter) != 1 && doc.Delimiter != "\\t" {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", doc.Delimiter)
		}
		d := doc.Delimiter[0]
		if doc.Delimiter == "\\t" {
			d = '\t'
		}
		opts = append(opts, csvbind.WithDelimiter(d))
	}
	if doc.Quote != "" {
		if len(doc.Quote) != 1 {
			return nil, fmt.Errorf("quote must be a single character, got %q", doc.Quote)
		}
		opts = append(opts, csvbind.WithQuote(doc.Quote[0]))
	}
	if doc.HeaderRow > 0 {
		opts = append(opts, csvbind.WithHeaderRow(doc.HeaderRow))
	}
	if doc.Strict {
		opts = append(opts, csvbind.WithStrict())
	}
	return opts, nil
}
