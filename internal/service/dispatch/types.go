package dispatch

import (
	"strings"

	"github.com/sandevgo/truthlens/internal/service/media"
)

type Branch string

const (
	BranchNone  Branch = "none"
	BranchAudio Branch = "audio"
	BranchImage Branch = "image"
	BranchText  Branch = "text"
)

// Request is one multi-modal analysis request. Media fields carry base64,
// optionally behind a data URI header.
type Request struct {
	Query     string `json:"query"`
	ImageData string `json:"image_data"`
	AudioData string `json:"audio_data"`
}

// Branch picks the handling path: audio wins over image, image over text.
func (r Request) Branch() Branch {
	switch {
	case strings.TrimSpace(r.AudioData) != "":
		return BranchAudio
	case strings.TrimSpace(r.ImageData) != "":
		return BranchImage
	case strings.TrimSpace(r.Query) != "":
		return BranchText
	default:
		return BranchNone
	}
}

type Thought struct {
	Step    string `json:"step"`
	Details string `json:"details"`
}

type TimelineEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}

// Response has the same shape on every branch.
type Response struct {
	Analysis string             `json:"analysis"`
	Thoughts []Thought          `json:"thoughts"`
	Sources  []string           `json:"sources"`
	Audio    *media.AudioReport `json:"audio,omitempty"`
	Timeline []TimelineEvent    `json:"timeline,omitempty"`
	Branch   Branch             `json:"-"`
}

// SuccessBody is the wire shape of a completed analysis: the response fields
// flattened next to "status".
type SuccessBody struct {
	Status string `json:"status"`
	Response
}

func Success(resp Response) SuccessBody {
	return SuccessBody{Status: "success", Response: resp}
}
