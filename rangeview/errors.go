package rangeview

import "fmt"

// RetrievalError means the data source could not be fetched. The view keeps
// whatever it had loaded before.
type RetrievalError struct {
	Source string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
