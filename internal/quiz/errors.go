package quiz

import "errors"

// ErrNoEligibleRecords means the date filter matched nothing. It is an
// ordinary outcome of Start, shown to the user as a notice.
var ErrNoEligibleRecords = errors.New("no words registered in the selected period")

// Precondition violations. A transition that returns one of these has left
// the session untouched.
var (
	ErrIncompleteDateRange = errors.New("select both a start and an end date")
	ErrMissingEndDate      = errors.New("select the end date too")
	ErrInvalidDateRange    = errors.New("start date is after end date")
	ErrNotInProgress       = errors.New("no question is waiting for an answer")
	ErrAlreadyAnswered     = errors.New("this question has already been answered")
	ErrNotAnswered         = errors.New("answer the current question first")
	ErrNotComplete         = errors.New("the quiz is not finished yet")
	ErrRetryUnavailable    = errors.New("there are no wrong answers left to retry")
)

// IsPrecondition reports whether err is one of the precondition violations.
func IsPrecondition(err error) bool {
	for _, target := range []error{
		ErrIncompleteDateRange, ErrMissingEndDate, ErrInvalidDateRange,
		ErrNotInProgress, ErrAlreadyAnswered, ErrNotAnswered,
		ErrNotComplete, ErrRetryUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
