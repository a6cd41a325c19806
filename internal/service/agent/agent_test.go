package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/internal/providers/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAI replays canned model turns and records every prompt.
type scriptedAI struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (s *scriptedAI) Generate(_ context.Context, p core.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p.Text)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "Thought: still thinking", nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

func (s *scriptedAI) Model() string { return "test-model" }

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) ObserveTool(tool, outcome string, _ time.Duration) {
	r.events = append(r.events, tool+":"+outcome)
}

func newTestRegistry(t *testing.T) *tools.Registry {
	r := tools.NewRegistry()
	require.NoError(t, r.Register(core.Tool{
		Name:        "echo",
		Description: "Echoes its input.",
		Invoke: func(_ context.Context, in string) (string, error) {
			return "echo:" + in, nil
		},
	}))
	require.NoError(t, r.Register(core.Tool{
		Name:        "broken",
		Description: "Always fails.",
		Invoke: func(context.Context, string) (string, error) {
			return "", errors.New("network down")
		},
	}))
	require.NoError(t, r.Register(core.Tool{
		Name:        "long",
		Description: "Returns a long text.",
		Invoke: func(context.Context, string) (string, error) {
			return strings.Repeat("a", 50) + strings.Repeat("z", 50), nil
		},
	}))
	return r.Freeze()
}

func newTestAgent(t *testing.T, ai *scriptedAI, maxSteps, limit int) (*Agent, *recordingObserver) {
	reg := newTestRegistry(t)
	obs := &recordingObserver{}
	cfg := &config.AgentConfig{MaxSteps: maxSteps, ObservationLimit: limit}
	return NewAgent(cfg, ai, reg, NewExecutor(reg, cfg.GetObservationLimit(), obs)), obs
}

func TestAgent_FinalAnswerImmediately(t *testing.T) {
	ai := &scriptedAI{replies: []string{" I know this.\nFinal Answer: It is false."}}
	a, _ := newTestAgent(t, ai, 5, 0)

	res, err := a.Run(context.Background(), "Is the moon made of cheese?")
	require.NoError(t, err)

	assert.Equal(t, "It is false.", res.Output)
	assert.Empty(t, res.Steps)
	assert.False(t, res.Stopped())
	require.Len(t, ai.prompts, 1)
	assert.True(t, strings.HasSuffix(ai.prompts[0], "Question: Is the moon made of cheese?\nThought:"))
	assert.Contains(t, ai.prompts[0], "echo: Echoes its input.\nbroken: Always fails.")
	assert.Contains(t, ai.prompts[0], "should be one of [echo, broken, long]")
}

func TestAgent_ToolThenAnswer(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		" I should search.\nAction: echo\nAction Input: \"senate vote\"\nObservation: made up result",
		" I now know the final answer\nFinal Answer: See https://example.com/a",
	}}
	a, obs := newTestAgent(t, ai, 5, 0)

	res, err := a.Run(context.Background(), "q")
	require.NoError(t, err)

	require.Len(t, res.Steps, 1)
	assert.Equal(t, "echo", res.Steps[0].Tool)
	assert.Equal(t, "senate vote", res.Steps[0].Input)
	assert.Equal(t, "echo:senate vote", res.Steps[0].Observation)
	assert.NotContains(t, res.Steps[0].Log, "made up result")
	assert.Equal(t, "See https://example.com/a", res.Output)
	assert.Equal(t, []string{"echo:ok"}, obs.events)

	require.Len(t, ai.prompts, 2)
	assert.True(t, strings.HasSuffix(ai.prompts[1],
		"Thought: I should search.\nAction: echo\nAction Input: \"senate vote\"\nObservation: echo:senate vote\nThought: "))
}

func TestAgent_RecoverableFailures(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		"I will just ramble.",
		"Action: echo",
		"Action: unknown_tool\nAction Input: x",
		"Action: broken\nAction Input: x",
		"Action: echo\nAction Input: x\nFinal Answer: both",
		"Final Answer: done",
	}}
	a, obs := newTestAgent(t, ai, 10, 0)

	res, err := a.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "done", res.Output)
	require.Len(t, res.Steps, 5)

	assert.Equal(t, ExceptionTool, res.Steps[0].Tool)
	assert.Equal(t, MissingActionMessage, res.Steps[0].Observation)

	assert.Equal(t, ExceptionTool, res.Steps[1].Tool)
	assert.Equal(t, MissingActionInputMessage, res.Steps[1].Observation)

	assert.Equal(t, "unknown_tool", res.Steps[2].Tool)
	assert.Equal(t, "unknown_tool is not a valid tool, try one of [echo, broken, long].", res.Steps[2].Observation)

	assert.Equal(t, "broken", res.Steps[3].Tool)
	assert.Equal(t, "Error executing tool: network down", res.Steps[3].Observation)

	assert.Equal(t, ExceptionTool, res.Steps[4].Tool)
	assert.Equal(t, InvalidResponseMessage, res.Steps[4].Observation)
	assert.True(t, strings.HasPrefix(res.Steps[4].Log, "Parsing LLM output produced both a final answer and a parse-able action"))

	assert.Equal(t, []string{"unknown_tool:unknown", "broken:error"}, obs.events)
}

func TestAgent_StepLimit(t *testing.T) {
	ai := &scriptedAI{}
	a, _ := newTestAgent(t, ai, 3, 0)

	res, err := a.Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, StoppedOutput, res.Output)
	assert.True(t, res.Stopped())
	assert.Len(t, res.Steps, 3)
	assert.Len(t, ai.prompts, 3)
}

func TestAgent_InferenceErrorAborts(t *testing.T) {
	ai := &scriptedAI{err: errors.New("quota exceeded")}
	a, _ := newTestAgent(t, ai, 3, 0)

	_, err := a.Run(context.Background(), "q")
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Len(t, ai.prompts, 1)
}

func TestAgent_TruncatesFeedNotTrace(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		"Action: long\nAction Input: x",
		"Final Answer: ok",
	}}
	a, _ := newTestAgent(t, ai, 5, 20)

	res, err := a.Run(context.Background(), "q")
	require.NoError(t, err)

	assert.Len(t, res.Steps[0].Observation, 100)
	assert.Contains(t, ai.prompts[1], "aaaaa\n\n... [TRUNCATED 80 chars] ...\n\nzzzzzzzzzzzzzzz")
}

func TestAgent_InputWithPlaceholders(t *testing.T) {
	ai := &scriptedAI{replies: []string{"Final Answer: ok"}}
	a, _ := newTestAgent(t, ai, 5, 0)

	_, err := a.Run(context.Background(), "what is {agent_scratchpad} and {tools}?")
	require.NoError(t, err)
	assert.Contains(t, ai.prompts[0], "Question: what is {agent_scratchpad} and {tools}?")
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      decision
		wantError string
	}{
		{
			name: "numbered action",
			in:   "Thought: x\nAction 1: echo\nAction 1 Input: hello world  ",
			want: decision{Tool: "echo", Input: "hello world"},
		},
		{
			name: "final answer uses last marker",
			in:   "Final Answer: draft\nFinal Answer:  real  ",
			want: decision{Output: "real", Final: true},
		},
		{
			name:      "no action",
			in:        "just text",
			wantError: MissingActionMessage,
		},
		{
			name:      "action without input",
			in:        "Action: echo\nsomething",
			wantError: MissingActionInputMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, perr := parseDecision(tt.in)
			if tt.wantError != "" {
				require.NotNil(t, perr)
				assert.Equal(t, tt.wantError, perr.Observation)
				return
			}
			require.Nil(t, perr)
			tt.want.Log = tt.in
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCutObservation(t *testing.T) {
	assert.Equal(t, "Action: a\nAction Input: b", cutObservation("Action: a\nAction Input: b\nObservation: fake\nThought: more"))
	assert.Equal(t, "no observation", cutObservation("no observation"))

	answer := "Final Answer: The post claims\nObservation: turnout fell\nbut records show it rose."
	assert.Equal(t, answer, cutObservation(answer))
}

func TestAgent_FinalAnswerKeepsObservationLine(t *testing.T) {
	ai := &scriptedAI{replies: []string{
		" I now know the final answer\nFinal Answer: Misleading.\nObservation: the quoted figure is from 2019.\nSources: https://example.com/a",
	}}
	a, _ := newTestAgent(t, ai, 5, 0)

	res, err := a.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, res.Steps)
	assert.Equal(t, "Misleading.\nObservation: the quoted figure is from 2019.\nSources: https://example.com/a", res.Output)
}
