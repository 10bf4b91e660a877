package volume

import "fmt"

// Kind classifies the ways a volume operation can fail. Grounded on the
// disko driver's errno.go pattern, adapted from its bare string-sentinel
// style to a struct that also carries the path that triggered it.
type Kind string

const (
	NotThisFormat Kind = "not this filesystem format"
	CorruptChain  Kind = "corrupt cluster chain"
	CorruptRecord Kind = "corrupt MFT record"
	NotFound      Kind = "not found"
	NotADirectory Kind = "not a directory"
	IsADirectory  Kind = "is a directory"
	NotText       Kind = "not text"
	RequiresPath  Kind = "path required"
)

// Error is the concrete error type returned by volume operations.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, volume.ErrNotFound) and friends work regardless
// of the path or wrapped error carried by either side.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds an *Error of the given kind for the given path.
func New(kind Kind, path string) error {
	return &Error{Kind: kind, Path: path}
}

// Wrap builds an *Error of the given kind, chaining an underlying cause.
func Wrap(kind Kind, path string, err error) error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Sentinels usable with errors.Is; path and wrapped cause are ignored by Is.
var (
	ErrNotThisFormat = &Error{Kind: NotThisFormat}
	ErrCorruptChain  = &Error{Kind: CorruptChain}
	ErrCorruptRecord = &Error{Kind: CorruptRecord}
	ErrNotFound      = &Error{Kind: NotFound}
	ErrNotADirectory = &Error{Kind: NotADirectory}
	ErrIsADirectory  = &Error{Kind: IsADirectory}
	ErrNotText       = &Error{Kind: NotText}
	ErrRequiresPath  = &Error{Kind: RequiresPath}
)
