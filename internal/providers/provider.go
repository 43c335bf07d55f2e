// Package providers contains the Bible text provider adapters. Each adapter
// fetches raw passage text for a reference from one external source; the
// caller decides what to do with the provider-specific markup embedded in
// the result.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Version identifies a Bible translation and, with it, the adapter used to
// fetch it. There is no fallback between adapters.
type Version string

const (
	VersionESV Version = "ESV"
	VersionNET Version = "NET"
)

// ParseVersion maps a directive version tag to a Version. The tag is
// case-insensitive.
func ParseVersion(tag string) (Version, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case string(VersionESV):
		return VersionESV, nil
	case string(VersionNET):
		return VersionNET, nil
	default:
		return "", fmt.Errorf("unsupported scripture version %q", tag)
	}
}

// LookupOptions controls what the provider includes in the passage text.
type LookupOptions struct {
	IncludeHeadings       bool
	IncludeVerseNumbers   bool
	IncludeFootnotes      bool
	IncludeShortCopyright bool
	SuppressCrossRefLinks bool
}

// DefaultLookupOptions matches the directive defaults: verse numbers and
// the short copyright on, everything else off.
func DefaultLookupOptions() LookupOptions {
	return LookupOptions{
		IncludeVerseNumbers:   true,
		IncludeShortCopyright: true,
	}
}

// LookupResult is a fetched passage. Text carries the provider's raw
// markup untouched; Canonical is empty when the provider does not confirm
// a canonical form.
type LookupResult struct {
	Reference       string
	Canonical       string
	Version         Version
	Text            string
	TranslationName string
	RequestID       string
}

// CanonicalOrReference returns the provider-confirmed reference when
// available, otherwise the reference as requested.
func (r *LookupResult) CanonicalOrReference() string {
	if r.Canonical != "" {
		return r.Canonical
	}
	return r.Reference
}

// Provider fetches passage text for a reference string.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, reference string, opts LookupOptions) (*LookupResult, error)
}

// LookupError classifies a failed lookup. StatusCode follows HTTP
// semantics: 503 for missing configuration, 502 for upstream or transport
// failure, 404 for an empty passage result.
type LookupError struct {
	StatusCode int
	Message    string
}

func (e *LookupError) Error() string {
	return e.Message
}

// NewLookupError builds a LookupError with the given classification.
func NewLookupError(status int, format string, args ...any) *LookupError {
	return &LookupError{StatusCode: status, Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a lookup that returned no passage.
func IsNotFound(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.StatusCode == http.StatusNotFound
}

// IsConfigError reports whether err is a missing-credential condition
// rather than a bad request or upstream failure.
func IsConfigError(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.StatusCode == http.StatusServiceUnavailable
}

func boolParam(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
