// Package generate drafts blog content through a language model.
//
// Failures are reported as *Error values that match ErrFailed with
// errors.Is, so callers can tell a generation failure apart from their own
// mistakes. Nothing is retried or cached; each call asks the model again.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrFailed matches every generation failure.
var ErrFailed = errors.New("generation failed")

// ErrInvalidRequest is returned when a Request cannot be sent at all.
var ErrInvalidRequest = errors.New("invalid generation request")

// Error describes a failed generation attempt.
type Error struct {
	Op         string // e.g. "request", "decode", "empty"
	StatusCode int    // upstream HTTP status, 0 if none
	Err        error
}

func (e *Error) Error() string {
	msg := "generate: " + e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrFailed.
func (e *Error) Is(target error) bool { return target == ErrFailed }

// Tone is the voice of the generated text.
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneEnthusiastic Tone = "enthusiastic"
)

// Length is the requested size of the generated text.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// MaxTokens returns the completion budget for l.
func (l Length) MaxTokens() int {
	switch l {
	case LengthShort:
		return 500
	case LengthLong:
		return 2000
	default:
		return 1000
	}
}

func (l Length) words() string {
	switch l {
	case LengthShort:
		return "about 300 words"
	case LengthLong:
		return "about 1200 words"
	default:
		return "about 600 words"
	}
}

// Request is the input for one generation.
type Request struct {
	Topic    string   `json:"topic"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Tone     Tone     `json:"tone"`
	Length   Length   `json:"length"`
}

// Normalize trims fields, drops empty keywords and fills the default tone and
// length. It returns ErrInvalidRequest when the topic is empty or tone or
// length are unknown.
func (r Request) Normalize() (Request, error) {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Category = strings.TrimSpace(r.Category)
	if r.Topic == "" {
		return r, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	kw := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			kw = append(kw, k)
		}
	}
	r.Keywords = kw
	switch r.Tone {
	case "":
		r.Tone = ToneProfessional
	case ToneCasual, ToneProfessional, ToneEnthusiastic:
	default:
		return r, fmt.Errorf("%w: unknown tone %q", ErrInvalidRequest, r.Tone)
	}
	switch r.Length {
	case "":
		r.Length = LengthMedium
	case LengthShort, LengthMedium, LengthLong:
	default:
		return r, fmt.Errorf("%w: unknown length %q", ErrInvalidRequest, r.Length)
	}
	return r, nil
}

// SystemPrompt is sent ahead of every request.
const SystemPrompt = "You are a retail industry expert who writes engaging blog content."

// Prompt builds the user message for r. r should already be normalized.
func Prompt(r Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a blog post about %s.", r.Topic)
	if r.Category != "" {
		fmt.Fprintf(&b, " It belongs to the %s category.", r.Category)
	}
	if len(r.Keywords) > 0 {
		fmt.Fprintf(&b, " Include keywords: %s.", strings.Join(r.Keywords, ", "))
	}
	fmt.Fprintf(&b, " Use a %s tone and aim for %s.", r.Tone, r.Length.words())
	b.WriteString(" Format the post in Markdown with short sections.")
	return b.String()
}

// Generator produces article text for a request.
type Generator interface {
	Generate(ctx context.Context, r Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, r Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, r Request) (string, error) {
	return f(ctx, r)
}

// Disabled is a Generator that always fails. It is used when no provider is
// configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, Request) (string, error) {
	return "", &Error{Op: "disabled", Err: errors.New("no generation provider configured")}
}
