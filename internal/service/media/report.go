package media

import (
	"regexp"
	"strings"
)

const (
	FieldTranscript  = "TRANSCRIPT"
	FieldVerdict     = "VERDICT"
	FieldReply       = "REPLY"
	FieldLanguageTag = "LANGUAGE_TAG"
)

const (
	VerdictTrue       = "True"
	VerdictFalse      = "False"
	VerdictMisleading = "Misleading"
)

// AudioReport is the structured form of the audio interpreter's answer.
type AudioReport struct {
	Transcript  string   `json:"transcript"`
	Verdict     string   `json:"verdict"`
	Reply       string   `json:"reply"`
	LanguageTag string   `json:"language_tag"`
	Missing     []string `json:"missing,omitempty"`
}

func (r AudioReport) Complete() bool {
	return len(r.Missing) == 0
}

var (
	fieldLine   = regexp.MustCompile(`(?i)^\s*(?:[-*•>]\s*)?(?:\*\*|__)?\s*(TRANSCRIPT|VERDICT|REPLY|LANGUAGE[_ ]TAG)\s*(?:\*\*|__)?\s*:\s*(?:\*\*|__)?(.*)$`)
	languageTag = regexp.MustCompile(`^[A-Za-z]{2,3}(?:-[A-Za-z0-9]{2,8})*$`)
)

// ParseAudioReport reads the TRANSCRIPT/VERDICT/REPLY/LANGUAGE_TAG lines from
// free text. Transcript and reply may continue over several lines. Fields that
// are absent or unusable are listed in Missing.
func ParseAudioReport(text string) AudioReport {
	fields := map[string]*strings.Builder{}
	var current string

	for _, line := range strings.Split(text, "\n") {
		if m := fieldLine.FindStringSubmatch(line); m != nil {
			current = strings.ReplaceAll(strings.ToUpper(m[1]), " ", "_")
			if _, seen := fields[current]; seen {
				// first occurrence wins
				current = ""
				continue
			}
			b := &strings.Builder{}
			b.WriteString(strings.TrimSpace(m[2]))
			fields[current] = b
			continue
		}
		if current != FieldTranscript && current != FieldReply {
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			b := fields[current]
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(trimmed)
		}
	}

	value := func(name string) string {
		if b, ok := fields[name]; ok {
			return cleanValue(b.String())
		}
		return ""
	}

	r := AudioReport{
		Transcript:  value(FieldTranscript),
		Verdict:     normalizeVerdict(value(FieldVerdict)),
		Reply:       value(FieldReply),
		LanguageTag: strings.Trim(value(FieldLanguageTag), `'"`),
	}
	if !languageTag.MatchString(r.LanguageTag) {
		r.LanguageTag = ""
	}

	for _, f := range []struct{ name, val string }{
		{FieldTranscript, r.Transcript},
		{FieldVerdict, r.Verdict},
		{FieldReply, r.Reply},
		{FieldLanguageTag, r.LanguageTag},
	} {
		if f.val == "" {
			r.Missing = append(r.Missing, f.name)
		}
	}
	return r
}

func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "**"), "**")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func normalizeVerdict(v string) string {
	lower := strings.ToLower(strings.Trim(v, `.!'" `))
	switch {
	case strings.Contains(lower, "mislead"):
		return VerdictMisleading
	case strings.HasPrefix(lower, "true"):
		return VerdictTrue
	case strings.HasPrefix(lower, "false"):
		return VerdictFalse
	default:
		return ""
	}
}
