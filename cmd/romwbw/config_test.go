package main

import "testing"

func TestParseDiskFlag(t *testing.T) {
	d, err := parseDiskFlag("3=hd0.img")
	if err != nil {
		t.Fatalf("parseDiskFlag: %v", err)
	}
	if d.Unit != 3 || d.Path != "hd0.img" {
		t.Fatalf("parsed = %+v, want unit=3 path=hd0.img", d)
	}
}

func TestParseDiskFlagWithSliceCount(t *testing.T) {
	d, err := parseDiskFlag("0=hd0.img:4")
	if err != nil {
		t.Fatalf("parseDiskFlag: %v", err)
	}
	if d.Unit != 0 || d.Path != "hd0.img" || d.Slices != 4 {
		t.Fatalf("parsed = %+v, want unit=0 path=hd0.img slices=4", d)
	}
}

func TestParseDiskFlagRejectsOutOfRangeUnit(t *testing.T) {
	if _, err := parseDiskFlag("16=hd0.img"); err == nil {
		t.Fatalf("expected error for out-of-range unit")
	}
}

func TestParseDiskFlagRejectsMalformed(t *testing.T) {
	if _, err := parseDiskFlag("hd0.img"); err == nil {
		t.Fatalf("expected error for missing '='")
	}
}

func TestParseRomAppFlag(t *testing.T) {
	a, err := parseRomAppFlag("Z=ZORK=zork.bin")
	if err != nil {
		t.Fatalf("parseRomAppFlag: %v", err)
	}
	if a.Key != 'Z' || a.Name != "ZORK" || a.Path != "zork.bin" {
		t.Fatalf("parsed = %+v", a)
	}
}

func TestParseEscapeCharLiteral(t *testing.T) {
	c, err := parseEscapeChar("q")
	if err != nil || c != 'q' {
		t.Fatalf("parseEscapeChar(q) = %v, %v", c, err)
	}
}

func TestParseEscapeCharCaretNotation(t *testing.T) {
	c, err := parseEscapeChar("^]")
	if err != nil || c != 0x1D {
		t.Fatalf("parseEscapeChar(^]) = %#02x, %v, want 0x1D", c, err)
	}
}
