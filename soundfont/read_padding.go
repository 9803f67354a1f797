package soundfont

import (
	"strings"

	"github.com/Thar0/mm/xmltree"
)

func isPaddingDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',':
		return true
	}
	return false
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParseMatchPadding reads bytes written as 0xHH tokens separated by
// whitespace or commas.
func ParseMatchPadding(text string) ([]byte, int, bool) {
	var result []byte

	for i := 0; i < len(text); {
		if isPaddingDelimiter(text[i]) {
			i++
			continue
		}

		var end = i
		for end < len(text) && !isPaddingDelimiter(text[end]) {
			end++
		}

		var token = text[i:end]
		if len(token) != 4 || !strings.HasPrefix(token, "0x") {
			return nil, i, false
		}

		high, okHigh := hexDigit(token[2])
		low, okLow := hexDigit(token[3])
		if !okHigh || !okLow {
			return nil, i, false
		}

		result = append(result, high<<4|low)
		i = end
	}

	return result, 0, true
}

func (bank *Bank) readMatchPadding(node *xmltree.Node) error {
	if node.HasAttrs() {
		return malformed(node, "unexpected attributes in %v", node.Name)
	}

	if node.HasChildren() {
		return malformed(node, "unexpected element %v in padding data", node.Children[0].Name)
	}

	if bank.MatchPadding != nil {
		return malformed(node, "more than one %v", node.Name)
	}

	padding, offset, ok := ParseMatchPadding(node.Text)
	if !ok {
		return malformed(node, "malformed padding data at offset %v", offset)
	}

	if len(padding) == 0 {
		return malformed(node, "no padding data")
	}

	bank.MatchPadding = padding
	return nil
}
