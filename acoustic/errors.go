package acoustic

import "errors"

// Sentinel errors for structural invariant violations. Callers can test for
// these with errors.Is even though the wrapping message carries the
// offending element's identity.
var (
	// ErrInvalidGeometry is returned when a length or radius is non-positive
	// where the model requires it to be strictly positive.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMissingEmbouchure is returned when an Instrument has no embouchure.
	ErrMissingEmbouchure = errors.New("missing embouchure")

	// ErrDuplicateEmbouchure is returned when SetEmbouchure is called twice.
	ErrDuplicateEmbouchure = errors.New("duplicate embouchure")

	// ErrMissingTerminal is returned when an Instrument has no terminal load.
	ErrMissingTerminal = errors.New("missing terminal")

	// ErrDuplicateTerminal is returned when SetTerminal is called twice.
	ErrDuplicateTerminal = errors.New("duplicate terminal")

	// ErrDiscontinuousBore is returned when two adjacent bore sections do not
	// share a radius at their shared boundary.
	ErrDiscontinuousBore = errors.New("discontinuous bore")

	// ErrFootNotBore is returned when the foot-most component is not a bore
	// section.
	ErrFootNotBore = errors.New("foot end is not a bore section")

	// ErrFingeringHoleCount is returned when a fingering specifies more
	// holes than the instrument has.
	ErrFingeringHoleCount = errors.New("fingering hole count mismatch")

	// ErrUnknownFingering is returned by SetFingering when the requested
	// note has no registered fingering.
	ErrUnknownFingering = errors.New("unknown fingering")

	// ErrUnknownNote is returned when a note name has no entry in the
	// active temperament.
	ErrUnknownNote = errors.New("unknown note")
)
