package jww

import (
	"errors"
	"fmt"
)

// Sentinel and wrapped errors covering every fatal failure mode the decoder
// can produce. Soft failures never reach here: a truncated block-definition
// list keeps the records parsed before the fault, unreadable or empty
// layer/group names get default names, and unresolved block references are
// left for ValidateBlockReferences to report.
var (
	// ErrInvalidSignature is returned when a file does not begin with
	// the 8-byte "JwwData." signature.
	ErrInvalidSignature = errors.New("jww: invalid signature, expected \"JwwData.\"")

	// ErrEntityListNotFound is returned when the entity-list anchor scan
	// fails to locate a class-dictionary marker anywhere in the file.
	ErrEntityListNotFound = errors.New("jww: entity list not found")

	// ErrUnexpectedEOF is the base sentinel wrapped by UnexpectedEOFError.
	ErrUnexpectedEOF = errors.New("jww: unexpected end of file")
)

// UnexpectedEOFError reports that the input ran out while reading a named
// structure. The returned error wraps ErrUnexpectedEOF, so
// errors.Is(err, ErrUnexpectedEOF) still succeeds.
func UnexpectedEOFError(context string) error {
	return fmt.Errorf("%w: while reading %s", ErrUnexpectedEOF, context)
}

// classPIDError is returned when an entity references a class PID that was
// never registered by a preceding 0xFFFF class-dictionary record.
type classPIDError struct {
	pid uint32
}

func (e *classPIDError) Error() string {
	return fmt.Sprintf("jww: unknown class PID %d", e.pid)
}

// UnknownClassPIDError reports a class-dictionary lookup miss.
func UnknownClassPIDError(pid uint32) error {
	return &classPIDError{pid: pid}
}

// entityClassError is returned when a registered class name does not match
// any entity constructor this decoder knows how to parse.
type entityClassError struct {
	name string
}

func (e *entityClassError) Error() string {
	return fmt.Sprintf("jww: unknown entity class %q", e.name)
}

// UnknownEntityClassError reports a class name with no matching parser.
func UnknownEntityClassError(name string) error {
	return &entityClassError{name: name}
}
