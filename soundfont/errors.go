package soundfont

import (
	"fmt"

	"github.com/Thar0/mm/xmltree"
	"github.com/ossrs/go-oryx-lib/errors"
)

type ErrorKind int

const (
	// KindMalformed covers unexpected elements, missing or unparseable attributes.
	KindMalformed ErrorKind = iota
	// KindReference covers unknown or duplicate names and inconsistent field combinations.
	KindReference
	// KindProvider covers waveforms that lack data the bank needs.
	KindProvider
	// KindInternal covers layout invariants the emitter could not keep.
	KindInternal
)

func (kind ErrorKind) String() string {
	switch kind {
	case KindMalformed:
		return "malformed input"
	case KindReference:
		return "reference error"
	case KindProvider:
		return "data provider error"
	case KindInternal:
		return "internal error"
	}

	return "error"
}

// Error is a compile failure. Line is zero when no source line applies.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
}

func (err *Error) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%v: %v (line %v)", err.Kind, err.Message, err.Line)
	}

	return fmt.Sprintf("%v: %v", err.Kind, err.Message)
}

func newError(kind ErrorKind, node *xmltree.Node, format string, args ...interface{}) *Error {
	var result = &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}

	if node != nil {
		result.Line = node.Line
	}

	return result
}

func malformed(node *xmltree.Node, format string, args ...interface{}) error {
	return newError(KindMalformed, node, format, args...)
}

func badReference(node *xmltree.Node, format string, args ...interface{}) error {
	return newError(KindReference, node, format, args...)
}

func providerError(node *xmltree.Node, format string, args ...interface{}) error {
	return newError(KindProvider, node, format, args...)
}

func internalError(format string, args ...interface{}) error {
	return newError(KindInternal, nil, format, args...)
}

// AsError finds the compile failure behind err, if any.
func AsError(err error) (*Error, bool) {
	result, ok := errors.Cause(err).(*Error)
	return result, ok
}
