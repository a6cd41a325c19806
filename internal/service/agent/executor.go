package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

const (
	ToolOutcomeOK      = "ok"
	ToolOutcomeError   = "error"
	ToolOutcomeUnknown = "unknown"
)

// ToolSet is the read-only view of the registered tools.
type ToolSet interface {
	Lookup(name string) (core.Tool, bool)
	Names() []string
	Describe() string
}

// ToolObserver receives one event per tool invocation.
type ToolObserver interface {
	ObserveTool(tool, outcome string, elapsed time.Duration)
}

type Executor struct {
	tools    ToolSet
	limit    int
	observer ToolObserver
}

func NewExecutor(tools ToolSet, limit int, observer ToolObserver) *Executor {
	return &Executor{
		tools:    tools,
		limit:    limit,
		observer: observer,
	}
}

// Execute runs one tool. Failures become observations so the loop can continue.
// It returns the full observation and the possibly truncated text fed back to the model.
func (e *Executor) Execute(ctx context.Context, name, input string) (observation, feed string) {
	logger := log.FromCtx(ctx)

	tool, ok := e.tools.Lookup(name)
	if !ok {
		logger.Warn().Str("tool", name).Msg("model requested unknown tool")
		e.observe(name, ToolOutcomeUnknown, 0)
		observation = fmt.Sprintf("%s is not a valid tool, try one of [%s].", name, strings.Join(e.tools.Names(), ", "))
		return observation, observation
	}

	logger.Info().Str("tool", name).Str("input", input).Msg("executing tool")
	start := time.Now()
	res, err := tool.Invoke(ctx, input)
	if err != nil {
		logger.Warn().Err(err).Str("tool", name).Msg("tool failed")
		e.observe(name, ToolOutcomeError, time.Since(start))
		res = fmt.Sprintf("Error executing tool: %v", err)
	} else {
		e.observe(name, ToolOutcomeOK, time.Since(start))
	}

	return res, e.truncate(res)
}

func (e *Executor) observe(tool, outcome string, elapsed time.Duration) {
	if e.observer != nil {
		e.observer.ObserveTool(tool, outcome, elapsed)
	}
}

// truncate keeps the head and tail of long observations.
func (e *Executor) truncate(input string) string {
	if e.limit <= 0 {
		return input
	}
	runes := []rune(input)
	if len(runes) <= e.limit {
		return input
	}

	headLen := e.limit / 4
	head := string(runes[:headLen])
	tail := string(runes[len(runes)-(e.limit-headLen):])
	return fmt.Sprintf("%s\n\n... [TRUNCATED %d chars] ...\n\n%s", head, len(runes)-e.limit, tail)
}
