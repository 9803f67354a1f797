package soundfont

import (
	"strconv"
	"strings"

	"github.com/Thar0/mm/xmltree"
	"github.com/ossrs/go-oryx-lib/errors"
)

var errNotANote = errors.New("expected a note name or a number in 0..127")

// Optional is a value that may be absent from the description.
type Optional[T any] struct {
	Value T
	Set   bool
}

func (optional Optional[T]) Or(fallback T) T {
	if optional.Set {
		return optional.Value
	}
	return fallback
}

type attrSpec struct {
	name     string
	optional bool
	parse    func(value string) error
}

func required(name string, parse func(string) error) attrSpec {
	return attrSpec{name: name, parse: parse}
}

func optional(name string, parse func(string) error) attrSpec {
	return attrSpec{name: name, optional: true, parse: parse}
}

// into stores the parsed value in target.
func into[T any](target *T, parse func(string) (T, error)) func(string) error {
	return func(value string) error {
		result, err := parse(value)
		if err != nil {
			return err
		}

		*target = result
		return nil
	}
}

// intoOptional stores the parsed value in target and marks it set.
func intoOptional[T any](target *Optional[T], parse func(string) (T, error)) func(string) error {
	return func(value string) error {
		result, err := parse(value)
		if err != nil {
			return err
		}

		*target = Optional[T]{Value: result, Set: true}
		return nil
	}
}

// parseAttrs applies specs to the attributes of node. Every attribute must be
// listed and every non-optional attribute must be present.
func parseAttrs(node *xmltree.Node, specs []attrSpec) error {
	var seen = make([]bool, len(specs))

	for _, attr := range node.Attrs {
		var found = -1

		for i, spec := range specs {
			if spec.name == attr.Name {
				found = i
				break
			}
		}

		if found < 0 {
			return malformed(node, "unexpected attribute %v in %v", attr.Name, node.Name)
		}

		if err := specs[found].parse(attr.Value); err != nil {
			return malformed(node, "bad value %q for attribute %v in %v: %v", attr.Value, attr.Name, node.Name, err)
		}

		seen[found] = true
	}

	for i, spec := range specs {
		if !spec.optional && !seen[i] {
			return malformed(node, "missing required attribute %v in %v", spec.name, node.Name)
		}
	}

	return nil
}

var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true, "continue": true,
	"default": true, "do": true, "double": true, "else": true, "enum": true, "extern": true,
	"float": true, "for": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "register": true, "restrict": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true, "volatile": true,
	"while": true, "_Alignas": true, "_Alignof": true, "_Atomic": true, "_Bool": true,
	"_Complex": true, "_Generic": true, "_Imaginary": true, "_Noreturn": true,
	"_Static_assert": true, "_Thread_local": true,
}

func isIdentifierChar(c byte, first bool) bool {
	switch {
	case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case '0' <= c && c <= '9':
		return !first
	}
	return false
}

func parseCIdentifier(value string) (string, error) {
	if value == "" {
		return "", errors.New("empty identifier")
	}

	for i := 0; i < len(value); i++ {
		if !isIdentifierChar(value[i], i == 0) {
			return "", errors.Errorf("%v is not a valid C identifier", value)
		}
	}

	if cKeywords[value] {
		return "", errors.Errorf("%v is a C keyword", value)
	}

	return value, nil
}

func parseString(value string) (string, error) {
	return value, nil
}

// parseInteger reads a decimal or 0x prefixed hexadecimal integer.
func parseInteger(value string, bitSize int) (int64, error) {
	var text = strings.TrimSpace(value)
	var base = 10

	var negative = strings.HasPrefix(text, "-")
	var digits = strings.TrimPrefix(text, "-")

	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}

	if negative {
		digits = "-" + digits
	}

	result, err := strconv.ParseInt(digits, base, bitSize)
	if err != nil {
		return 0, errors.Errorf("expected an integer")
	}

	return result, nil
}

func parseInt(value string) (int, error) {
	result, err := parseInteger(value, 32)
	return int(result), err
}

func parseU8(value string) (uint8, error) {
	result, err := parseInteger(value, 64)
	if err != nil {
		return 0, err
	}

	if result < 0 || result > 0xFF {
		return 0, errors.Errorf("%v is out of range for u8", result)
	}

	return uint8(result), nil
}

func parseS16(value string) (int16, error) {
	result, err := parseInteger(value, 64)
	if err != nil {
		return 0, err
	}

	if result < -0x8000 || result > 0x7FFF {
		return 0, errors.Errorf("%v is out of range for s16", result)
	}

	return int16(result), nil
}

func parseUint(value string) (uint32, error) {
	result, err := parseInteger(value, 64)
	if err != nil {
		return 0, err
	}

	if result < 0 || result > 0xFFFFFFFF {
		return 0, errors.Errorf("%v is out of range for u32", result)
	}

	return uint32(result), nil
}

func parseDouble(value string) (float64, error) {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.Errorf("expected a number")
	}

	return result, nil
}

func parseBool(value string) (bool, error) {
	switch strings.TrimSpace(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, errors.Errorf("expected true or false")
}
