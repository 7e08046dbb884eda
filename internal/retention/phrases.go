package retention

// #region imports
import "strings"

// #endregion imports

// #region acceptance-phrases

// acceptancePhrases signal the agent has conceded the cancellation.
var acceptancePhrases = []string{
	"process the cancellation",
	"proceed with cancellation",
	"process your cancellation",
	"i understand your decision to cancel",
	"respect your choice to cancel",
	"proceed with canceling",
}

// offerPhrases signal the agent is still presenting alternatives.
var offerPhrases = []string{
	"before we",
	"let me offer",
	"i can arrange",
	"we can",
	"how about",
}

// AcceptsCancellation reports whether a response text commits to processing
// the cancellation: it must contain an acceptance phrase AND must not contain
// an offer-presenting phrase. Both conditions are required.
func AcceptsCancellation(response string) bool {
	lower := strings.ToLower(response)
	accepted := false
	for _, p := range acceptancePhrases {
		if strings.Contains(lower, p) {
			accepted = true
			break
		}
	}
	if !accepted {
		return false
	}
	for _, p := range offerPhrases {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}

// #endregion acceptance-phrases

// #region reasoning-strip

// reasoningMarkers are self-referential explanation openers; generated
// responses are customer-facing only, so everything from the first marker
// line onward is dropped.
var reasoningMarkers = []string{
	"in this response",
	"i'm empathizing",
	"i'm offering",
	"this option provides",
	"i'm presenting",
}

// StripReasoning removes leaked meta-commentary from a generated response.
// If stripping would empty the text, the original is returned unchanged; an
// empty response is never produced here.
func StripReasoning(response string) string {
	lines := strings.Split(response, "\n")
	var kept []string
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		marked := false
		for _, m := range reasoningMarkers {
			if strings.Contains(lower, m) {
				marked = true
				break
			}
		}
		if marked {
			break
		}
		kept = append(kept, line)
	}
	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if cleaned == "" {
		return response
	}
	return cleaned
}

// #endregion reasoning-strip
