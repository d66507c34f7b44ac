package display

import (
	"strings"
	"testing"
)

func renderLines(t *testing.T, tbl *Table) []string {
	t.Helper()
	return strings.Split(strings.TrimSuffix(tbl.Render(), "\n"), "\n")
}

func TestTable_Empty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() without headers = %q, want empty", got)
	}
}

func TestTable_Layout(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Date", "Fajr", "Isha"})
	tbl.AddRow([]string{"Wed 05 Sep", "05:09", "21:21"})
	tbl.AddRow([]string{"Thu 06 Sep", "05:10", "--:--"})

	want := []string{
		"  Date        Fajr   Isha ",
		"  ──────────  ─────  ─────",
		"  Wed 05 Sep  05:09  21:21",
		"  Thu 06 Sep  05:10  --:--",
	}
	got := renderLines(t, tbl)
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTable_AlignRight(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Date", "Maghrib"})
	tbl.AddRow([]string{"Wed", "7:48 PM"})
	tbl.AddRow([]string{"Thu", "12:05 AM"})
	tbl.AlignRight(1, 7, -1)

	got := renderLines(t, tbl)
	if got[2] != "  Wed    7:48 PM" {
		t.Errorf("row = %q", got[2])
	}
	if got[3] != "  Thu   12:05 AM" {
		t.Errorf("row = %q", got[3])
	}
}

func TestTable_MissingCells(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable([]string{"Date", "Fajr"})
	tbl.AddRow([]string{"Wed"})
	got := renderLines(t, tbl)
	if got[2] != "  Wed"+strings.Repeat(" ", 7) {
		t.Errorf("row = %q", got[2])
	}
}

func TestTable_RowRoles(t *testing.T) {
	withColor(t)

	tbl := NewTable([]string{"Date", "Time"})
	tbl.AddRow([]string{"Mon", "05:00"})
	tbl.AddRow([]string{"Tue", "05:01"})
	tbl.AddRow([]string{"Wed", "05:02"})
	tbl.SetDimRow(0)
	tbl.SetHighlightRow(1)
	tbl.SetHighlightRow(9) // out of range, ignored

	lines := renderLines(t, tbl)
	if want := Dim("Mon   05:00"); lines[2] != "  "+want {
		t.Errorf("past row = %q, want %q", lines[2], "  "+want)
	}
	if want := Accent("Tue   05:01"); lines[3] != "  "+want {
		t.Errorf("today row = %q, want %q", lines[3], "  "+want)
	}
	if lines[4] != "  Wed   05:02" {
		t.Errorf("plain row should not be styled: %q", lines[4])
	}
}

func TestTable_WideCells(t *testing.T) {
	SetEnabled(false)

	// Degree signs are one cell wide but two bytes long.
	tbl := NewTable([]string{"Method", "Fajr"})
	tbl.AddRow([]string{"MWL", "18°"})
	tbl.AddRow([]string{"Egypt", "19.5°"})

	lines := renderLines(t, tbl)
	if lines[2] != "  MWL     18°  " {
		t.Errorf("row = %q", lines[2])
	}
}
