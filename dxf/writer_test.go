package dxf

import (
	"strings"
	"testing"
)

func TestWriteDocumentStartsAndEndsCorrectly(t *testing.T) {
	out := ToString(NewDocument().AddLine(0, 0, 100, 100))

	if !strings.HasPrefix(out, "  0\nSECTION\n  2\nHEADER\n") {
		t.Errorf("output does not start with the HEADER section prologue:\n%s", out[:64])
	}
	if !strings.HasSuffix(out, "  0\nEOF\n") {
		t.Errorf("output does not end with EOF:\n...%s", out[len(out)-32:])
	}
}

func TestWriteDocumentSectionOrder(t *testing.T) {
	out := ToString(NewDocument())

	sections := []string{"HEADER", "TABLES", "BLOCKS", "ENTITIES", "OBJECTS"}
	last := -1
	for _, name := range sections {
		idx := strings.Index(out, "  0\nSECTION\n  2\n"+name+"\n")
		if idx < 0 {
			t.Fatalf("section %s missing from output", name)
		}
		if idx < last {
			t.Errorf("section %s out of order", name)
		}
		last = idx
	}
}

// TestWriteDocumentHandlesUnique checks that every group-5 handle in the
// output is a distinct uppercase hex string.
func TestWriteDocumentHandlesUnique(t *testing.T) {
	doc := NewDocument().
		AddLine(0, 0, 1, 1).
		AddCircle(5, 5, 2).
		AddText(0, 0, "label").
		AddBlock(Block{Name: "B1", Entities: []Entity{NewLine(0, 0, 1, 0)}}).
		AddInsert("B1", 10, 10)

	lines := strings.Split(ToString(doc), "\n")
	seen := make(map[string]bool)
	for i := 0; i+1 < len(lines); i++ {
		if lines[i] != "  5" {
			continue
		}
		h := lines[i+1]
		if seen[h] {
			t.Errorf("duplicate handle %q", h)
		}
		seen[h] = true
		if h != strings.ToUpper(h) {
			t.Errorf("handle %q is not uppercase hex", h)
		}
	}
	if len(seen) == 0 {
		t.Fatal("no handles found in output")
	}
}

func TestEscapeUnicode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"図面", `\U+56F3\U+9762`},
		{"a\nb", `a\Pb`},
		{"a\rb", "ab"},
		{`a\b`, `a\\b`},
		{"tab\there", `tab\U+0009here`},
	}
	for _, tt := range tests {
		if got := EscapeUnicode(tt.in); got != tt.want {
			t.Errorf("EscapeUnicode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestWriteDocumentEscapesTextContent checks that CJK text content appears
// in the output in \U+XXXX escaped form, never as raw bytes.
func TestWriteDocumentEscapesTextContent(t *testing.T) {
	out := ToString(NewDocument().AddText(0, 0, "図面"))

	if !strings.Contains(out, `\U+56F3\U+9762`) {
		t.Error(`expected escaped sequence \U+56F3\U+9762 in output`)
	}
	if strings.Contains(out, "図面") {
		t.Error("raw CJK characters leaked into the output")
	}
}

func TestWriteDocumentLineTypeTable(t *testing.T) {
	out := ToString(NewDocument().AddLine(0, 0, 1, 1, WithLineType("DASHED")))

	for _, name := range []string{"BYLAYER", "BYBLOCK", "CONTINUOUS", "DASHED"} {
		if !strings.Contains(out, "  2\n"+name+"\n") {
			t.Errorf("LTYPE table missing %s", name)
		}
	}
	// DASHED pattern [0.6, -0.3]: total length is the sum of magnitudes.
	if !strings.Contains(out, " 40\n0.900000000000\n") {
		t.Error("DASHED pattern length 0.9 missing")
	}
	if !strings.Contains(out, " 49\n0.600000000000\n") || !strings.Contains(out, " 49\n-0.300000000000\n") {
		t.Error("DASHED dash/gap elements missing")
	}
}

func TestWriteDocumentBlockRecords(t *testing.T) {
	doc := NewDocument().AddBlock(Block{Name: "Door"})
	out := ToString(doc)

	if !strings.Contains(out, "  2\nBLOCK_RECORD\n") {
		t.Fatal("BLOCK_RECORD table missing")
	}
	for _, name := range []string{"*Model_Space", "*Paper_Space", "Door"} {
		if !strings.Contains(out, "  2\n"+name+"\n") {
			t.Errorf("block record/definition for %q missing", name)
		}
	}
}
