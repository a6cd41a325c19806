package dispatch

import "strings"

const timelineMarker = "TIMELINE_EVENT:"

// parseTimeline reads "TIMELINE_EVENT: date | title | context" lines.
// Lines with fewer than two fields are ignored.
func parseTimeline(text string) []TimelineEvent {
	var events []TimelineEvent
	for _, line := range strings.Split(text, "\n") {
		_, rest, ok := strings.Cut(line, timelineMarker)
		if !ok {
			continue
		}
		parts := strings.Split(rest, "|")
		if len(parts) < 2 {
			continue
		}

		ev := TimelineEvent{
			Date:        cleanField(parts[0]),
			Title:       cleanField(parts[1]),
			Description: "Context unavailable",
			Kind:        "resurgence",
		}
		if len(parts) > 2 {
			if d := cleanField(strings.Join(parts[2:], "|")); d != "" {
				ev.Description = d
			}
		}
		if len(events) == 0 {
			ev.Kind = "origin"
		}
		events = append(events, ev)
	}
	return events
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
