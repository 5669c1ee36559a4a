package table

import (
	"bytes"
	"io"
	"strings"
	"text/template"
)

// Table prints rows of data in aligned columns. Each column renders a row
// with a text/template.
type Table struct {
	columns   []string
	templates []*template.Template
	data      []interface{}
	footer    []string

	CellSeparator string
}

// New initializes a new Table
func New() *Table {
	return &Table{CellSeparator: "  "}
}

// AddColumn adds a new header field with the header and format, which is
// expected to be template string compatible with text/template. When compiling
// the format fails, AddColumn panics.
func (t *Table) AddColumn(header, format string) {
	tmpl := template.Must(template.New("template for " + header).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(format))

	t.columns = append(t.columns, header)
	t.templates = append(t.templates, tmpl)
}

// AddRow adds a new row to the table, which is filled with data.
func (t *Table) AddRow(data interface{}) {
	t.data = append(t.data, data)
}

// AddFooter adds a line printed after the table.
func (t *Table) AddFooter(line string) {
	t.footer = append(t.footer, line)
}

func (t *Table) writeLine(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(t.CellSeparator)
		}
		b.WriteString(cell)
		if pad := widths[i] - len(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}

	_, err := io.WriteString(w, strings.TrimRight(b.String(), " ")+"\n")
	return err
}

// Write prints the table to w.
func (t *Table) Write(w io.Writer) error {
	if len(t.templates) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(t.data))
	buf := bytes.NewBuffer(nil)
	for _, data := range t.data {
		row := make([]string, 0, len(t.templates))
		for _, tmpl := range t.templates {
			if err := tmpl.Execute(buf, data); err != nil {
				return err
			}
			row = append(row, buf.String())
			buf.Reset()
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(t.columns))
	total := (len(t.columns) - 1) * len(t.CellSeparator)
	for i, header := range t.columns {
		widths[i] = len(header)
		for _, row := range rows {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		total += widths[i]
	}
	separator := strings.Repeat("-", total) + "\n"

	if err := t.writeLine(w, t.columns, widths); err != nil {
		return err
	}
	if _, err := io.WriteString(w, separator); err != nil {
		return err
	}

	for _, row := range rows {
		if err := t.writeLine(w, row, widths); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, separator); err != nil {
		return err
	}

	for _, line := range t.footer {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	return nil
}
