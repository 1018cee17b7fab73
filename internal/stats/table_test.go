package stats

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable(true,
		column{title: "#", align: alignRight},
		column{title: "Time", align: alignRight},
		column{title: "Ao5", align: alignRight},
	)
	tbl.addRow("9", "00:09.870", "-")
	tbl.addRow("10", "01:02.500", "00:11.684")

	lines := tbl.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " #      Time       Ao5" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 9 00:09.870         -" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "10 01:02.500 00:11.684" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableWithoutHeader(t *testing.T) {
	tbl := newTable(false, column{}, column{align: alignRight})
	tbl.addRow("Best", "00:09.870")
	tbl.addRow("Ao12", "-")
	lines := tbl.lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "Ao12         -" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestTableMissingCellsPad(t *testing.T) {
	tbl := newTable(false, column{}, column{})
	tbl.addRow("Solves")
	tbl.addRow("Best", "x")
	lines := tbl.lines()
	if lines[0] != "Solves  " {
		t.Fatalf("unexpected padded line: %q", lines[0])
	}
}
