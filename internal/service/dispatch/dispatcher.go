package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/truthlens/internal/service/agent"
	"github.com/sandevgo/truthlens/internal/service/media"
	"github.com/sandevgo/truthlens/pkg/log"
)

const (
	OutcomeSuccess     = "success"
	OutcomeClientError = "client_error"
	OutcomeError       = "error"
)

// Interpreter turns a media payload into text. It reports failures as text.
type Interpreter interface {
	Interpret(ctx context.Context, raw string) string
}

type Reasoner interface {
	Run(ctx context.Context, input string) (agent.Result, error)
}

// Recorder receives one event per dispatched request.
type Recorder interface {
	ObserveRequest(branch, outcome string, elapsed time.Duration)
}

// Dispatcher routes a request to exactly one branch and shapes the response.
// All collaborators are shared and read-only.
type Dispatcher struct {
	image      Interpreter
	audio      Interpreter
	reasoner   Reasoner
	audioLabel string
	recorder   Recorder
}

func NewDispatcher(image, audio Interpreter, reasoner Reasoner, audioModel string, recorder Recorder) *Dispatcher {
	return &Dispatcher{
		image:      image,
		audio:      audio,
		reasoner:   reasoner,
		audioLabel: modelLabel(audioModel),
		recorder:   recorder,
	}
}

func (d *Dispatcher) Analyze(ctx context.Context, req Request) (resp Response, err error) {
	start := time.Now()
	branch := req.Branch()
	ctx = log.WithFields(ctx, map[string]string{"branch": string(branch)})
	logger := log.FromCtx(ctx)

	defer func() {
		outcome := OutcomeSuccess
		switch {
		case IsClientError(err):
			outcome = OutcomeClientError
		case err != nil:
			outcome = OutcomeError
			logger.Error().Err(err).Msg("analysis failed")
		}
		if d.recorder != nil {
			d.recorder.ObserveRequest(string(branch), outcome, time.Since(start))
		}
	}()

	switch branch {
	case BranchAudio:
		resp, err = d.analyzeAudio(ctx, req.AudioData)
	case BranchImage:
		resp, err = d.analyzeImage(ctx, req.Query, req.ImageData)
	case BranchText:
		resp, err = d.reason(ctx, req.Query, nil)
	default:
		return Response{}, ErrNoInput
	}
	if err != nil {
		return Response{}, err
	}

	resp.Branch = branch
	logger.Info().
		Int("thoughts", len(resp.Thoughts)).
		Int("sources", len(resp.Sources)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")
	return resp, nil
}

func (d *Dispatcher) analyzeAudio(ctx context.Context, raw string) (Response, error) {
	analysis, err := guard(StageAudio, func() string { return d.audio.Interpret(ctx, raw) })
	if err != nil {
		return Response{}, err
	}

	report := media.ParseAudioReport(analysis)
	if !report.Complete() {
		log.FromCtx(ctx).Warn().Strs("missing", report.Missing).Msg("audio report is not in the expected format")
	}

	return Response{
		Analysis: analysis,
		Thoughts: []Thought{
			{Step: "Audio Transcription", Details: fmt.Sprintf("Processed by %s.", d.audioLabel)},
			{Step: "Fact-Checking", Details: "Cross-referenced claim with knowledge base."},
		},
		Sources: []string{},
		Audio:   &report,
	}, nil
}

func (d *Dispatcher) analyzeImage(ctx context.Context, query, raw string) (Response, error) {
	thoughts := []Thought{{Step: "Visual Forensics", Details: "Image context analyzed."}}

	description, err := guard(StageImage, func() string { return d.image.Interpret(ctx, raw) })
	if err != nil {
		// the image is context only; reasoning still runs on the query
		log.FromCtx(ctx).Warn().Err(err).Msg("image interpretation failed")
		cause := err
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			cause = stageErr.Err
		}
		return d.reason(ctx, query+"\n\n[IMAGE CONTEXT ERROR]: Could not process image. "+cause.Error(), thoughts)
	}

	return d.reason(ctx, query+"\n\n[IMAGE CONTEXT]: "+description, thoughts)
}

func (d *Dispatcher) reason(ctx context.Context, prompt string, thoughts []Thought) (Response, error) {
	var res agent.Result
	var runErr error
	_, err := guard(StageReasoning, func() string {
		res, runErr = d.reasoner.Run(ctx, prompt)
		return ""
	})
	if err == nil && runErr != nil {
		err = &StageError{Stage: StageReasoning, Err: runErr}
	}
	if err != nil {
		return Response{}, err
	}

	all := make([]Thought, 0, len(thoughts)+len(res.Steps))
	all = append(all, thoughts...)
	all = append(all, thoughtsFromSteps(res.Steps)...)

	analysis := res.Output
	return Response{
		Analysis: analysis,
		Thoughts: all,
		Sources:  extractSources(res),
		Timeline: parseTimeline(analysis),
	}, nil
}

// guard runs one stage and converts a panic into a StageError.
func guard(stage Stage, fn func() string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return fn(), nil
}
