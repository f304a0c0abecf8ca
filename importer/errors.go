package importer

import (
	"errors"
	"fmt"
)

// ErrFatalConfiguration marks a missing required collaborator. Nothing has
// been mutated when this is returned.
var ErrFatalConfiguration = errors.New("fatal configuration error")

// ErrUnsupportedValue marks a document value with no sensible default
// (group type, discount type, fee type, address type). It aborts the
// enclosing creation transaction.
var ErrUnsupportedValue = errors.New("unsupported document value")

// MissingReferenceError reports an external key referenced before it was
// resolved. It indicates a broken pass ordering, so it is never swallowed.
type MissingReferenceError struct {
	Kind string
	Key  string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Key)
}

func IsMissingReference(err error) bool {
	var mre *MissingReferenceError
	return errors.As(err, &mre)
}
