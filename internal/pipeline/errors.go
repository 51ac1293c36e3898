package pipeline

import "fmt"

// Stage names the step whose failure aborted the pipeline.
type Stage string

const (
	StageFetch   Stage = "fetch_failed"
	StageExtract Stage = "extraction_failed"
)

// Error is returned by BuildHeadlineResponse when no response can be built.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("headline pipeline: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
