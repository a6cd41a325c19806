package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

const StoppedOutput = "Agent stopped due to iteration limit or time limit."

// Agent is a ReAct loop over the registered tools. It holds no per-request
// state and is shared by all requests.
type Agent struct {
	ai       core.InferenceProvider
	executor *Executor
	prefix   string
	maxSteps int
}

func NewAgent(cfg *config.AgentConfig, ai core.InferenceProvider, tools ToolSet, executor *Executor) *Agent {
	maxSteps := cfg.GetMaxSteps()
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &Agent{
		ai:       ai,
		executor: executor,
		prefix:   newPromptPrefix(tools.Describe(), tools.Names()),
		maxSteps: maxSteps,
	}
}

// Run reasons over input until the model gives a final answer or the step
// bound is hit. Only inference failures are returned as errors.
func (a *Agent) Run(ctx context.Context, input string) (Result, error) {
	logger := log.FromCtx(ctx)
	result := Result{Input: input}

	var scratchpad strings.Builder
	for i := 1; i <= a.maxSteps; i++ {
		text, err := a.ai.Generate(ctx, core.Prompt{
			Text: renderPrompt(a.prefix, input, scratchpad.String()),
		})
		if err != nil {
			return result, fmt.Errorf("reasoning step %d: %w", i, err)
		}
		text = cutObservation(text)

		var step Step
		var feed string

		d, perr := parseDecision(text)
		switch {
		case perr != nil:
			logger.Debug().Int("step", i).Str("observation", perr.Observation).Msg("unparseable model output")
			step = Step{Tool: ExceptionTool, Input: perr.Observation, Log: perr.Log, Observation: perr.Observation}
			feed = perr.Observation
		case d.Final:
			logger.Debug().Int("steps", len(result.Steps)).Msg("final answer")
			result.Output = d.Output
			return result, nil
		default:
			step = Step{Tool: d.Tool, Input: d.Input, Log: d.Log}
			step.Observation, feed = a.executor.Execute(ctx, d.Tool, d.Input)
		}

		result.Steps = append(result.Steps, step)
		scratchpad.WriteString(step.Log)
		scratchpad.WriteString("\nObservation: ")
		scratchpad.WriteString(feed)
		scratchpad.WriteString("\nThought: ")
	}

	logger.Warn().Int("max_steps", a.maxSteps).Msg("reasoning stopped at step limit")
	result.Output = StoppedOutput
	return result, nil
}
