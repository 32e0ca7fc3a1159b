package memory

import (
	"strings"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// FormatProfile renders a profile as advisory context for delegation.
// An absent or empty profile formats to the empty string.
func FormatProfile(profile contractx.MemoryProfile) string {
	if len(profile.MusicPreferences) == 0 {
		return ""
	}
	return "Music Preferences: " + strings.Join(profile.MusicPreferences, ", ")
}
