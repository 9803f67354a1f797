package soundfont

import (
	"strings"
	"testing"

	"github.com/Thar0/mm/xmltree"
)

func TestParseCIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"Env0", false},
		{"_private", false},
		{"SAMPLE_1", false},
		{"1abc", true},
		{"", true},
		{"has space", true},
		{"dash-name", true},
		{"static", true},
		{"_Bool", true},
		{"Static", false},
	}

	for _, tt := range tests {
		got, err := parseCIdentifier(tt.input)

		if (err != nil) != tt.wantErr {
			t.Errorf("parseCIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}

		if !tt.wantErr && got != tt.input {
			t.Errorf("parseCIdentifier(%q) = %q, want %q", tt.input, got, tt.input)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	t.Parallel()

	if got, err := parseU8("255"); err != nil || got != 255 {
		t.Errorf("parseU8(255) = %v, %v, want 255", got, err)
	}
	if _, err := parseU8("256"); err == nil {
		t.Errorf("parseU8(256) error = nil, want range error")
	}
	if got, err := parseS16("-32768"); err != nil || got != -32768 {
		t.Errorf("parseS16(-32768) = %v, %v, want -32768", got, err)
	}
	if _, err := parseS16("40000"); err == nil {
		t.Errorf("parseS16(40000) error = nil, want range error")
	}
	if got, err := parseInt("0x10"); err != nil || got != 16 {
		t.Errorf("parseInt(0x10) = %v, %v, want 16", got, err)
	}
	if got, err := parseInt("-0x10"); err != nil || got != -16 {
		t.Errorf("parseInt(-0x10) = %v, %v, want -16", got, err)
	}
	if got, err := parseInt("010"); err != nil || got != 10 {
		t.Errorf("parseInt(010) = %v, %v, want 10", got, err)
	}
	if got, err := parseUint("0xFFFFFFFF"); err != nil || got != 0xFFFFFFFF {
		t.Errorf("parseUint(0xFFFFFFFF) = %v, %v, want 0xFFFFFFFF", got, err)
	}
	if _, err := parseUint("-1"); err == nil {
		t.Errorf("parseUint(-1) error = nil, want range error")
	}
	if got, err := parseDouble("22050.5"); err != nil || got != 22050.5 {
		t.Errorf("parseDouble(22050.5) = %v, %v, want 22050.5", got, err)
	}
	if _, err := parseBool("yes"); err == nil {
		t.Errorf("parseBool(yes) error = nil, want error")
	}
}

func TestOptionalOr(t *testing.T) {
	t.Parallel()

	var unset Optional[int]
	if got := unset.Or(7); got != 7 {
		t.Errorf("unset.Or(7) = %v, want 7", got)
	}

	var set = Optional[int]{Value: 0, Set: true}
	if got := set.Or(7); got != 0 {
		t.Errorf("set.Or(7) = %v, want 0", got)
	}
}

func TestParseAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attrs   []xmltree.Attr
		wantErr string
	}{
		{"complete", []xmltree.Attr{{Name: "Delay", Value: "10"}, {Name: "Arg", Value: "-5"}}, ""},
		{"missing", []xmltree.Attr{{Name: "Delay", Value: "10"}}, "missing required attribute Arg"},
		{"unknown", []xmltree.Attr{{Name: "Delay", Value: "1"}, {Name: "Arg", Value: "2"}, {Name: "Extra", Value: "3"}}, "unexpected attribute Extra"},
		{"unparseable", []xmltree.Attr{{Name: "Delay", Value: "ten"}, {Name: "Arg", Value: "2"}}, "attribute Delay"},
	}

	for _, tt := range tests {
		var node = &xmltree.Node{Name: "Point", Attrs: tt.attrs, Line: 12}
		var point EnvelopePoint

		err := parseAttrs(node, []attrSpec{
			required("Delay", into(&point.Delay, parseS16)),
			required("Arg", into(&point.Arg, parseS16)),
		})

		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%v: parseAttrs() error = %v", tt.name, err)
			} else if point.Delay != 10 || point.Arg != -5 {
				t.Errorf("%v: parseAttrs() = %+v, want {10 -5}", tt.name, point)
			}
			continue
		}

		compileErr, ok := AsError(err)
		if !ok {
			t.Errorf("%v: parseAttrs() error = %v, want a compile error", tt.name, err)
			continue
		}

		if compileErr.Kind != KindMalformed || compileErr.Line != 12 || !strings.Contains(compileErr.Message, tt.wantErr) {
			t.Errorf("%v: parseAttrs() error = %v, want malformed %q at line 12", tt.name, err, tt.wantErr)
		}
	}
}
