package availability

import "errors"

// Configuration errors invalidate the whole scan and are returned before
// any day is processed. Callers match them with errors.Is.
var (
	ErrInvalidRange       = errors.New("range start must be before range end")
	ErrRangeTooLong       = errors.New("range exceeds maximum allowed span")
	ErrInvalidStudyWindow = errors.New("earliest study time must be before latest study time")
)
