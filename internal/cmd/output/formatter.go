// Package output renders command results as tables, JSON or YAML.
//
// JSON and YAML encode the result value as is. Tables need a layout, so a
// result is printed as a table only when it is a Data or implements Tabular;
// anything else falls back to JSON.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// Format is an output format name.
type Format string

const (
	// FormatTable is the default terminal table.
	FormatTable Format = "table"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
	// FormatWide is a table with extra columns.
	FormatWide Format = "wide"
)

// Align is a table column alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data is a laid out table.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional
}

// Tabular is a result with its own table layout. wide asks for the extra
// columns of FormatWide.
type Tabular interface {
	Table(wide bool) Data
}

// Formatter writes a result in one format.
type Formatter interface {
	Format(w io.Writer, v any) error
}

// NewFormatter returns the formatter for format. Unknown formats get a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return jsonFormatter{}
	case FormatYAML:
		return yamlFormatter{}
	case FormatWide:
		return tableFormatter{wide: true}
	default:
		return tableFormatter{}
	}
}

// Write renders v to w in format.
func Write(w io.Writer, format Format, v any) error {
	return NewFormatter(format).Format(w, v)
}

type jsonFormatter struct{}

func (jsonFormatter) Format(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

type yamlFormatter struct{}

func (yamlFormatter) Format(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type tableFormatter struct {
	wide bool
}

func (f tableFormatter) Format(w io.Writer, v any) error {
	switch t := v.(type) {
	case Data:
		return renderTable(w, t)
	case Tabular:
		return renderTable(w, t.Table(f.wide))
	default:
		return jsonFormatter{}.Format(w, v)
	}
}

func renderTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		perColumn := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			perColumn[i] = a.tw()
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: perColumn}
		config.Row.Alignment = tw.CellAlignment{PerColumn: perColumn}
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		table.Header(toCells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(toCells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func (a Align) tw() tw.Align {
	switch a {
	case AlignLeft:
		return tw.AlignLeft
	case AlignCenter:
		return tw.AlignCenter
	case AlignRight:
		return tw.AlignRight
	default:
		return tw.Skip
	}
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// DetectFormat returns the explicit format when set, a table on a terminal,
// and JSON when stdout is piped.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates s. The empty string is accepted and means "detect".
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml, wide")
	}
}
