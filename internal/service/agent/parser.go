package agent

import (
	"regexp"
	"strings"
)

const (
	finalAnswerMarker = "Final Answer:"

	// ExceptionTool names the pseudo step recorded for unparseable model output.
	ExceptionTool = "_Exception"

	MissingActionMessage      = "Invalid Format: Missing 'Action:' after 'Thought:'"
	MissingActionInputMessage = "Invalid Format: Missing 'Action Input:' after 'Action:'"
	InvalidResponseMessage    = "Invalid or incomplete response"
)

var (
	actionPattern      = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
	actionOnlyPattern  = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)`)
	actionInputPattern = regexp.MustCompile(`(?s)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
	observationPattern = regexp.MustCompile(`\n\s*Observation\s*:`)
)

// decision is one parsed model turn: either a tool call or a final answer.
type decision struct {
	Tool   string
	Input  string
	Output string
	Final  bool
	Log    string
}

// parseError is a recoverable formatting failure. Observation is fed back to the model.
type parseError struct {
	Observation string
	Log         string
}

func (e *parseError) Error() string {
	return e.Log
}

// cutObservation drops anything the model wrote after its own action,
// including an invented "Observation:". Text without an action before the
// first Observation line is returned whole, so a final answer that quotes
// one keeps its tail.
func cutObservation(text string) string {
	loc := observationPattern.FindStringIndex(text)
	if loc == nil || !actionPattern.MatchString(text[:loc[0]]) {
		return text
	}
	return text[:loc[0]]
}

func parseDecision(text string) (decision, *parseError) {
	includesAnswer := strings.Contains(text, finalAnswerMarker)

	if m := actionPattern.FindStringSubmatch(text); m != nil {
		if includesAnswer {
			return decision{}, &parseError{
				Observation: InvalidResponseMessage,
				Log:         "Parsing LLM output produced both a final answer and a parse-able action: " + text,
			}
		}
		input := strings.Trim(strings.TrimSpace(m[2]), `"`)
		return decision{
			Tool:  strings.TrimSpace(m[1]),
			Input: input,
			Log:   text,
		}, nil
	}

	if includesAnswer {
		i := strings.LastIndex(text, finalAnswerMarker)
		return decision{
			Output: strings.TrimSpace(text[i+len(finalAnswerMarker):]),
			Final:  true,
			Log:    text,
		}, nil
	}

	switch {
	case !actionOnlyPattern.MatchString(text):
		return decision{}, &parseError{Observation: MissingActionMessage, Log: text}
	case !actionInputPattern.MatchString(text):
		return decision{}, &parseError{Observation: MissingActionInputMessage, Log: text}
	default:
		return decision{}, &parseError{
			Observation: InvalidResponseMessage,
			Log:         "Could not parse LLM output: `" + text + "`",
		}
	}
}
