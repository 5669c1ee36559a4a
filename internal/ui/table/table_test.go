package table

import (
	"bytes"
	"strings"
	"testing"
)

type volume struct {
	ID       string
	Path     string
	Selected bool
}

func TestTable(t *testing.T) {
	var tests = []struct {
		create func() *Table
		output string
	}{
		{
			func() *Table {
				return New()
			},
			"",
		},
		{
			func() *Table {
				table := New()
				table.AddColumn("ID", "{{ .ID }}")
				table.AddRow(volume{ID: "1A2B-3C4D"})
				return table
			},
			`
ID
---------
1A2B-3C4D
---------
`,
		},
		{
			func() *Table {
				table := New()
				table.AddColumn("ID", "{{ .ID }}")
				table.AddColumn("Path", "{{ .Path }}")
				table.AddColumn("Selected", "{{ if .Selected }}*{{ end }}")
				table.AddRow(volume{ID: "1A2B-3C4D", Path: "/storage/1A2B-3C4D", Selected: true})
				table.AddRow(volume{ID: "X", Path: "/storage/X"})
				table.AddFooter("2 volumes")
				return table
			},
			`
ID         Path                Selected
---------------------------------------
1A2B-3C4D  /storage/1A2B-3C4D  *
X          /storage/X
---------------------------------------
2 volumes
`,
		},
		{
			func() *Table {
				table := New()
				table.AddColumn("Names", `{{ join .Names ", " }}`)
				table.AddRow(struct{ Names []string }{[]string{"FullBackups", "PlaintextBackups"}})
				return table
			},
			`
Names
-----------------------------
FullBackups, PlaintextBackups
-----------------------------
`,
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			err := test.create().Write(buf)
			if err != nil {
				t.Fatal(err)
			}

			want := strings.TrimLeft(test.output, "\n")
			if buf.String() != want {
				t.Errorf("wrong output\n---- want ---\n%s\n---- got ---\n%s\n-------\n", want, buf.String())
			}
		})
	}
}

func TestTableInvalidTemplate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid template")
		}
	}()

	New().AddColumn("broken", "{{ .ID ")
}
