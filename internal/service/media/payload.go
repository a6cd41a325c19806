package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrEmptyPayload = errors.New("empty payload")

// Payload is a decoded media body.
type Payload struct {
	MIME string
	Data []byte
}

// DecodePayload accepts either a data URI ("data:image/png;base64,....") or a
// bare base64 body. The header, if any, ends at the first comma.
func DecodePayload(s string) (Payload, error) {
	header, body, found := strings.Cut(strings.TrimSpace(s), ",")
	if !found {
		body, header = header, ""
	}

	body = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, body)
	body = strings.TrimRight(body, "=")
	if body == "" {
		return Payload{}, ErrEmptyPayload
	}

	data, err := base64.RawStdEncoding.DecodeString(body)
	if err != nil {
		var urlErr error
		if data, urlErr = base64.RawURLEncoding.DecodeString(body); urlErr != nil {
			return Payload{}, fmt.Errorf("decode base64: %w", err)
		}
	}

	return Payload{
		MIME: headerMIME(header, data),
		Data: data,
	}, nil
}

func headerMIME(header string, data []byte) string {
	if rest, ok := strings.CutPrefix(header, "data:"); ok {
		mime, _, _ := strings.Cut(rest, ";")
		if mime = strings.TrimSpace(mime); mime != "" {
			return strings.ToLower(mime)
		}
	}
	mime, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return mime
}

// mimeWithPrefix returns p.MIME when it belongs to the given top-level type, else fallback.
func (p Payload) mimeWithPrefix(prefix, fallback string) string {
	if strings.HasPrefix(p.MIME, prefix) {
		return p.MIME
	}
	return fallback
}
