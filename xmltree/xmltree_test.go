package xmltree

import (
	"strings"
	"testing"
)

const testDocument = `<?xml version="1.0"?>
<!-- leading comment -->
<Soundfont Name="Test" Index="3">
    <Envelopes>
        <Envelope Name="A" Release="1">
            <Point Delay="1" Arg="2"/>
        </Envelope>
    </Envelopes>
    <MatchPadding>0x00 0x01</MatchPadding>
</Soundfont>
`

func TestParseBytes(t *testing.T) {
	t.Parallel()

	root, err := ParseBytes([]byte(testDocument))
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if root.Name != "Soundfont" || root.Line != 3 {
		t.Errorf("root = %v line %v, want Soundfont line 3", root.Name, root.Line)
	}

	if len(root.Attrs) != 2 || root.Attrs[0].Name != "Name" || root.Attrs[1].Name != "Index" {
		t.Errorf("root.Attrs = %v, want Name then Index", root.Attrs)
	}

	if value, ok := root.Attr("Index"); !ok || value != "3" {
		t.Errorf("Attr(Index) = %q, %v, want 3, true", value, ok)
	}
	if _, ok := root.Attr("Medium"); ok {
		t.Errorf("Attr(Medium) found, want missing")
	}

	if len(root.Children) != 2 {
		t.Fatalf("len(Children) = %v, want 2", len(root.Children))
	}

	var envelope = root.Children[0].Children[0]
	if envelope.Name != "Envelope" || envelope.Line != 5 || !envelope.HasAttrs() || !envelope.HasChildren() {
		t.Errorf("envelope = %+v", envelope)
	}

	var point = envelope.Children[0]
	if point.HasChildren() || point.Line != 6 {
		t.Errorf("point = %+v", point)
	}

	var padding = root.Children[1]
	if padding.Text != "0x00 0x01" || padding.HasAttrs() {
		t.Errorf("padding = %+v", padding)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		document string
		wantText string
	}{
		{"empty", "", "no root element"},
		{"comment only", "<!-- nothing -->", "no root element"},
		{"unclosed", "<A>\n<B>\n</A>", "xml line"},
		{"two roots", "<A/>\n<B/>", "second root element B at line 2"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.document))
			if err == nil {
				t.Fatalf("Parse() error = nil, want %q", tt.wantText)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Parse() error = %v, want %q", err, tt.wantText)
			}
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := ParseFile("testdata/does-not-exist.xml"); err == nil {
		t.Error("ParseFile() error = nil, want error")
	}
}
