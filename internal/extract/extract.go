// Package extract recovers a JSON object from free-text oracle replies.
//
// Resolution order is fixed: a direct parse of the fence-stripped text, then
// the widest brace-delimited span of the original text, then failure. Two
// inherited quirks are kept: the direct path deletes every whitespace run that
// ends in a newline (Unicode spaces included), so multi-line string values lose their line breaks, and
// the fallback span runs from the first '{' to the last '}', so unrelated
// braces around the real object defeat it.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/career-coach/internal/metrics"
	"go.uber.org/zap"
)

var (
	fenceAndNewline = regexp.MustCompile("```(?:json)?|[\\s\\v\\p{Z}\\x{FEFF}]*\\n")
	braceSpan       = regexp.MustCompile(`\{[\s\S]*\}`)
)

type options struct {
	truthy []string
	logger *zap.Logger
}

// Option tunes a single Extract call.
type Option func(*options)

// RequireTruthy additionally demands that the named fields hold a truthy value
// (not null, false, 0 or "").
func RequireTruthy(fields ...string) Option {
	return func(o *options) {
		o.truthy = append(o.truthy, fields...)
	}
}

// WithLogger logs fallback and failure paths.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Extract parses rawText into an Object and checks that every required field
// is present. A non-nil error is always a *Failure.
func Extract(rawText string, required []string, opts ...Option) (Object, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	obj, ok := parseDirect(rawText)
	if ok {
		metrics.ObserveExtraction(metrics.PathDirect)
	} else {
		o.logger.Debug("direct parse failed, trying brace span", zap.Int("raw_length", len(rawText)))
		var err error
		obj, err = parseBraceSpan(rawText)
		if err != nil {
			metrics.ObserveExtraction(metrics.PathFailed)
			o.logger.Warn("oracle reply is not parseable", zap.Int("raw_length", len(rawText)), zap.Error(err))
			return nil, &Failure{Reason: ReasonUnparseable, RawText: rawText, Cause: err}
		}
		metrics.ObserveExtraction(metrics.PathRegex)
	}

	missing := missingFields(obj, required, o.truthy)
	if len(missing) > 0 {
		o.logger.Warn("oracle reply is missing required fields", zap.Strings("missing", missing))
		return nil, &Failure{Reason: ReasonMissingFields, RawText: rawText, Missing: missing}
	}
	return obj, nil
}

func parseDirect(rawText string) (Object, bool) {
	cleaned := strings.TrimSpace(fenceAndNewline.ReplaceAllString(rawText, ""))
	obj, err := decodeObject(cleaned)
	return obj, err == nil
}

func parseBraceSpan(rawText string) (Object, error) {
	span := braceSpan.FindString(rawText)
	if span == "" {
		return nil, errNoObject
	}
	return decodeObject(span)
}

func decodeObject(text string) (Object, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errNoObject
	}
	return Object(m), nil
}

func missingFields(obj Object, required, truthy []string) []string {
	var missing []string
	for _, name := range required {
		if !obj.Has(name) {
			missing = append(missing, name)
		}
	}
	for _, name := range truthy {
		if !Truthy(obj[name]) && !contains(missing, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Truthy reports whether v is truthy under JavaScript rules for decoded JSON.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		return t != ""
	default:
		return true
	}
}
