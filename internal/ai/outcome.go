package ai

import "fmt"

// FailureReason tags why a translation produced no text.
type FailureReason string

const (
	ReasonEmptyInput   FailureReason = "empty_input"
	ReasonNoCandidates FailureReason = "no_candidates"
	ReasonMalformed    FailureReason = "malformed_structure"
	ReasonRequestError FailureReason = "request_error"
	ReasonUnknownError FailureReason = "unknown_error"
)

// NoContentPlaceholder stands in for the translation of empty text.
const NoContentPlaceholder = "(no content available)"

// Outcome is the result of one translation attempt: translated text when
// Reason is empty, a failure reason otherwise.
type Outcome struct {
	Text   string
	Reason FailureReason
}

func Translated(text string) Outcome {
	return Outcome{Text: text}
}

func Failed(reason FailureReason) Outcome {
	return Outcome{Reason: reason}
}

// OK reports whether the upstream returned translated text.
func (o Outcome) OK() bool {
	return o.Reason == ""
}

// String is the text to publish in a translated record.
func (o Outcome) String() string {
	switch o.Reason {
	case "":
		return o.Text
	case ReasonEmptyInput:
		return NoContentPlaceholder
	default:
		return fmt.Sprintf("(translation unavailable: %s)", o.Reason)
	}
}
