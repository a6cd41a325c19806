package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sandevgo/truthlens/internal/service/dispatch"
)

const (
	msgInvalidPayload = "Invalid or empty JSON payload."
	msgNoInput        = "No input provided."
	msgInternal       = "Internal server error."
)

type Analyzer interface {
	Analyze(ctx context.Context, req dispatch.Request) (dispatch.Response, error)
}

type Handler struct {
	analyzer     Analyzer
	exposeErrors bool
}

func NewHandler(analyzer Analyzer, exposeErrors bool) *Handler {
	return &Handler{
		analyzer:     analyzer,
		exposeErrors: exposeErrors,
	}
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) Register(e *echo.Echo) {
	e.POST("/api/analyze", h.analyze)
	e.GET("/healthz", h.health)
}

func (h *Handler) analyze(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := decodeRequest(c.Request().Body)
	if err != nil {
		// body limit exceeded while streaming
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return h.fail(c, err)
	}

	resp, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dispatch.Success(resp))
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, dispatch.ErrInvalidPayload):
		return c.JSON(http.StatusBadRequest, errorBody{Status: "error", Message: msgInvalidPayload})
	case errors.Is(err, dispatch.ErrNoInput):
		return c.JSON(http.StatusBadRequest, errorBody{Status: "error", Message: msgNoInput})
	}

	msg := msgInternal
	if h.exposeErrors {
		msg = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, errorBody{Status: "error", Message: msg})
}

// decodeRequest accepts a JSON object whose known fields are strings or null.
// Unknown fields are ignored.
func decodeRequest(body io.Reader) (dispatch.Request, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return dispatch.Request{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		return dispatch.Request{}, dispatch.ErrInvalidPayload
	}

	var req dispatch.Request
	for key, dst := range map[string]*string{
		"query":      &req.Query,
		"image_data": &req.ImageData,
		"audio_data": &req.AudioData,
	} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return dispatch.Request{}, dispatch.ErrInvalidPayload
		}
		if s != nil {
			*dst = *s
		}
	}
	return req, nil
}
