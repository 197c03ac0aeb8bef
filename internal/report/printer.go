package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists every supported output format
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

// Printer receives batch progress as it happens.
type Printer interface {
	// Entry is called before the push client starts for file.
	Entry(file string) error
	// Pushed is called once the push client for r.File has exited.
	Pushed(r *Result) error
	// Finish is called once after the last file.
	Finish(s *Summary) error
}

// NewPrinter returns the printer for format
func NewPrinter(format string, w io.Writer) (Printer, error) {
	switch format {
	case FormatText, "":
		return &TextPrinter{w: w}, nil
	case FormatTable:
		return &TablePrinter{TextPrinter: TextPrinter{w: w}}, nil
	case FormatJSON:
		return &JSONPrinter{w: w}, nil
	case FormatYAML:
		return &YAMLPrinter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// FormatSeconds renders a duration in seconds the way every text line does.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 6, 64)
}

// TextPrinter streams one name line and one timing line per file, then the total.
type TextPrinter struct {
	w io.Writer
}

func (p *TextPrinter) Entry(file string) error {
	_, err := fmt.Fprintln(p.w, file)
	return err
}

func (p *TextPrinter) Pushed(r *Result) error {
	_, err := fmt.Fprintf(p.w, "push %s used %s\n", r.File, FormatSeconds(r.Seconds))
	return err
}

func (p *TextPrinter) Finish(s *Summary) error {
	_, err := fmt.Fprintf(p.w, "total time: %s\n", FormatSeconds(s.TotalSeconds))
	return err
}

// TablePrinter streams like TextPrinter and renders a table at the end.
type TablePrinter struct {
	TextPrinter
}

func (p *TablePrinter) Finish(s *Summary) error {
	if err := p.TextPrinter.Finish(s); err != nil {
		return err
	}

	table := tablewriter.NewWriter(p.w)
	table.Header("File", "Exit", "Seconds")
	for _, r := range s.Results {
		exit := strconv.Itoa(r.ExitCode)
		if r.StartError != "" {
			exit = "not started"
		}
		table.Append([]string{r.File, exit, FormatSeconds(r.Seconds)})
	}
	table.Append([]string{"TOTAL", fmt.Sprintf("%d/%d ok", s.ExitZero, len(s.Results)), FormatSeconds(s.TotalSeconds)})
	return table.Render()
}

// JSONPrinter emits only the summary document
type JSONPrinter struct {
	w io.Writer
}

func (p *JSONPrinter) Entry(string) error   { return nil }
func (p *JSONPrinter) Pushed(*Result) error { return nil }

func (p *JSONPrinter) Finish(s *Summary) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// YAMLPrinter emits only the summary document
type YAMLPrinter struct {
	w io.Writer
}

func (p *YAMLPrinter) Entry(string) error   { return nil }
func (p *YAMLPrinter) Pushed(*Result) error { return nil }

func (p *YAMLPrinter) Finish(s *Summary) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
