package engine

import (
	"regexp"
	"strings"
)

// videoIDRE matches the 11-char ID after any recognized YouTube URL fragment.
// The trailing "/" alternative covers bare path segments (youtube.com/ID, /shorts/ID).
var videoIDRE = regexp.MustCompile(`(?:v=|/videos/|embed/|youtu\.be/|/v/|/e/|watch\?v=|&v=|/)([a-zA-Z0-9_-]{11})`)

var bareVideoIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID pulls the 11-char video ID from a YouTube link or a bare ID.
// It does not check that the video exists.
func ExtractVideoID(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if m := videoIDRE.FindStringSubmatch(link); len(m) >= 2 {
		return m[1], true
	}
	if bareVideoIDRE.MatchString(link) {
		return link, true
	}
	return "", false
}
