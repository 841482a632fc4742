package engine

import (
	"errors"
	"net/http"
)

// Pipeline error kinds. Each is terminal for the current operation.
// Wrap with fmt.Errorf("...: %w", Err...) to keep diagnostic detail;
// UserMessage never exposes the wrapped cause.
var (
	ErrInvalidReference      = errors.New("invalid video reference")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrAnalysisRequest       = errors.New("analysis request failed")
	ErrInsightsExtraction    = errors.New("insights extraction failed")
	ErrGenerationRequest     = errors.New("generation request failed")
	ErrNoPendingProfile      = errors.New("no pending style profile")
	ErrInvalidTopic          = errors.New("topic is required")
)

type errorKind struct {
	err     error
	message string
	status  int
}

var errorKinds = []errorKind{
	{ErrInvalidReference, "Invalid YouTube video link.", http.StatusBadRequest},
	{ErrTranscriptUnavailable, "Failed to fetch the transcript. Please make sure the video has captions available.", http.StatusBadRequest},
	{ErrAnalysisRequest, "Failed to analyze the transcript. Please try again later.", http.StatusInternalServerError},
	{ErrInsightsExtraction, "Failed to extract key insights from the analysis.", http.StatusInternalServerError},
	{ErrGenerationRequest, "Failed to generate the video script.", http.StatusInternalServerError},
	{ErrNoPendingProfile, "Transcript analysis not completed. Please start over.", http.StatusBadRequest},
	{ErrInvalidTopic, "Please enter a topic for the new script.", http.StatusBadRequest},
}

const genericMessage = "An unexpected error occurred. Please try again later."

func lookupKind(err error) (errorKind, bool) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k, true
		}
	}
	return errorKind{}, false
}

// UserMessage returns the short, stable, caller-facing text for err.
func UserMessage(err error) string {
	if k, ok := lookupKind(err); ok {
		return k.message
	}
	return genericMessage
}

// HTTPStatus maps err to the status code the web front end responds with.
func HTTPStatus(err error) int {
	if k, ok := lookupKind(err); ok {
		return k.status
	}
	return http.StatusInternalServerError
}
