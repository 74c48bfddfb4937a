package profiles

import (
	"strings"
	"time"
)

// Tones the prompt compiler understands. An empty tone falls back to neutral
// at compile time.
const (
	ToneNeutral = "neutral"
	ToneWarm    = "warm"
	ToneFormal  = "formal"
)

// ValidTone reports whether s is a supported cover-letter tone.
func ValidTone(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ToneNeutral, ToneWarm, ToneFormal:
		return true
	default:
		return false
	}
}

// Profile is the per-user dossier the analysis pipeline reads. One row per
// user, upserted by the user; analysis requires a non-empty ResumeText.
type Profile struct {
	UserID        string    `json:"-"`
	FullName      string    `json:"fullName"`
	ResumeText    string    `json:"resumeText"`
	ResumeFileKey string    `json:"-"`
	PreferredTone string    `json:"preferredTone"`
	TargetRole    string    `json:"targetRole"`
	Location      string    `json:"location"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
