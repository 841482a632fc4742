package engine

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantMsg    string
		wantStatus int
	}{
		{ErrInvalidReference, "Invalid YouTube video link.", http.StatusBadRequest},
		{fmt.Errorf("%w: 404", ErrTranscriptUnavailable), "Failed to fetch the transcript. Please make sure the video has captions available.", http.StatusBadRequest},
		{fmt.Errorf("%w: status 503", ErrAnalysisRequest), "Failed to analyze the transcript. Please try again later.", http.StatusInternalServerError},
		{ErrInsightsExtraction, "Failed to extract key insights from the analysis.", http.StatusInternalServerError},
		{ErrGenerationRequest, "Failed to generate the video script.", http.StatusInternalServerError},
		{ErrNoPendingProfile, "Transcript analysis not completed. Please start over.", http.StatusBadRequest},
		{ErrInvalidTopic, "Please enter a topic for the new script.", http.StatusBadRequest},
		{errors.New("boom"), genericMessage, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			if got := HTTPStatus(tt.err); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestUserMessage_HidesCause(t *testing.T) {
	err := fmt.Errorf("%w: upstream said secret-token-xyz", ErrAnalysisRequest)
	if got := UserMessage(err); got != "Failed to analyze the transcript. Please try again later." {
		t.Errorf("UserMessage() leaked detail: %q", got)
	}
}
