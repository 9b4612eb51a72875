// Package render prints gateway results for terminal users.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shamank/smartwallet-console/pkg/model"
)

// ErrorPrefix starts every rendered failure.
const ErrorPrefix = "❌ ERROR: "

// Printer writes pending, success and failure states to out.
type Printer struct {
	out                io.Writer
	green, red, yellow func(...any) string
}

// New returns a Printer. useColor forces ANSI colours on or off regardless
// of whether out is a terminal.
func New(out io.Writer, useColor bool) *Printer {
	p := &Printer{out: out, green: fmt.Sprint, red: fmt.Sprint, yellow: fmt.Sprint}
	if useColor {
		p.green = colorFunc(color.FgGreen)
		p.red = colorFunc(color.FgRed)
		p.yellow = colorFunc(color.FgYellow)
	}
	return p
}

func colorFunc(attr color.Attribute) func(...any) string {
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()
}

// Pending announces that an action was sent.
func (p *Printer) Pending(action string) error {
	_, err := fmt.Fprintln(p.out, p.yellow(fmt.Sprintf("Executing on-chain... (%s)", action)))
	return err
}

// Result prints a success in green and a failure in red. Structured data is
// printed as indented JSON.
func (p *Printer) Result(resp model.ActionResponse) error {
	if !resp.Success {
		_, err := fmt.Fprintln(p.out, p.red(ErrorPrefix+resp.Error))
		return err
	}
	text, err := FormatData(resp.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, p.green(text))
	return err
}

// FormatData renders a string result as-is and anything else as JSON.
func FormatData(data any) (string, error) {
	if s, ok := data.(string); ok {
		return s, nil
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}
	return string(b), nil
}

// Tools prints the action catalogue as a table.
func (p *Printer) Tools(tools []model.ToolInfo) error {
	table := tablewriter.NewWriter(p.out)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Name", "Description", "Parameters"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, []string{t.Name, t.Description, FormatParams(t.Parameters)})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// FormatParams lists parameters as "name: type", marking required ones
// with a trailing asterisk on the name.
func FormatParams(params []model.ParameterInfo) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, prm := range params {
		name := prm.Name
		if prm.Required {
			name += "*"
		}
		parts = append(parts, name+": "+prm.Type)
	}
	return strings.Join(parts, ", ")
}
