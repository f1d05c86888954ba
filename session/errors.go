package session

import "errors"

// ValidationKind classifies a locally rejected user action.
type ValidationKind int

const (
	NotAnArchive ValidationKind = iota + 1
	NoFileSelected
)

var (
	ErrNotAnArchive   = errors.New("please select a ZIP archive")
	ErrNoFileSelected = errors.New("please select a file first")
)

func (k ValidationKind) String() string {
	switch k {
	case NotAnArchive:
		return "not_an_archive"
	case NoFileSelected:
		return "no_file_selected"
	default:
		return "unknown"
	}
}

func (k ValidationKind) sentinel() error {
	switch k {
	case NotAnArchive:
		return ErrNotAnArchive
	case NoFileSelected:
		return ErrNoFileSelected
	default:
		return nil
	}
}

// ValidationError is returned for user actions the session refuses without
// leaving its pre-submission state.
type ValidationError struct {
	Kind ValidationKind
	Name string
}

func (e *ValidationError) Error() string {
	if e.Kind == NotAnArchive && e.Name != "" {
		return e.Kind.sentinel().Error() + ": " + e.Name + " is not a ZIP file"
	}
	return e.Kind.sentinel().Error()
}

// Is matches the package sentinel for the error kind.
func (e *ValidationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
