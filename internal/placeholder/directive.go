// Package placeholder scans document text for [[scripture:...]] directives
// and parses their pipe-delimited specs into lookup requests.
package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pulpitworks/lectern/internal/providers"
)

// Directive grammar: [[ scripture : <spec> ]], case-insensitive, with
// insignificant whitespace around the delimiters and the colon.
var directivePattern = regexp.MustCompile(`(?i)\[\[\s*scripture\s*:\s*([^\]]+?)\s*\]\]`)

// Match is one directive occurrence: the exact substring to replace and the
// trimmed spec text inside it. Two occurrences with identical Spec are the
// same directive.
type Match struct {
	Raw  string
	Spec string
}

// Extract returns every directive occurrence in document text, in order.
func Extract(text string) []Match {
	found := directivePattern.FindAllStringSubmatch(text, -1)
	if len(found) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(found))
	for _, m := range found {
		matches = append(matches, Match{Raw: m[0], Spec: strings.TrimSpace(m[1])})
	}
	return matches
}

// Directive is a parsed placeholder spec.
type Directive struct {
	Spec      string
	Reference string
	Version   providers.Version
	Options   providers.LookupOptions
}

// ErrMissingReference reports a directive with an empty reference field.
var ErrMissingReference = errors.New("scripture placeholder is missing a reference")

// UnsupportedVersionError reports an unrecognized version tag.
type UnsupportedVersionError struct {
	Tag string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported scripture version %q", e.Tag)
}

// UnknownOptionError reports an unrecognized option key. Key is exactly the
// offending token.
type UnknownOptionError struct {
	Key string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q in scripture placeholder", e.Key)
}

// InvalidOptionError reports an option field without a key=value form.
type InvalidOptionError struct {
	Option string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q in scripture placeholder, use key=value", e.Option)
}

// InvalidBoolError reports an option value that is not an accepted boolean
// spelling.
type InvalidBoolError struct {
	Value string
}

func (e *InvalidBoolError) Error() string {
	return fmt.Sprintf("invalid boolean value %q in scripture placeholder", e.Value)
}

// ParseSpec parses a pipe-delimited directive spec: reference, optional
// version tag (ESV default), then key=value option assignments.
func ParseSpec(spec string) (*Directive, error) {
	parts := strings.Split(spec, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 0 || parts[0] == "" {
		return nil, ErrMissingReference
	}

	d := &Directive{
		Spec:      strings.TrimSpace(spec),
		Reference: parts[0],
		Version:   providers.VersionESV,
		Options:   providers.DefaultLookupOptions(),
	}

	if len(parts) > 1 && parts[1] != "" {
		version, err := providers.ParseVersion(parts[1])
		if err != nil {
			return nil, &UnsupportedVersionError{Tag: parts[1]}
		}
		d.Version = version
	}

	for _, opt := range parts[2:] {
		if opt == "" {
			continue
		}
		rawKey, value, ok := strings.Cut(opt, "=")
		if !ok {
			return nil, &InvalidOptionError{Option: opt}
		}
		rawKey = strings.TrimSpace(rawKey)

		// The key is dispatched before the value is parsed, so an unknown
		// key is reported as such even when its value is also malformed.
		var set func(bool)
		switch strings.ToLower(rawKey) {
		case "headings", "include_headings":
			set = func(b bool) { d.Options.IncludeHeadings = b }
		case "verses", "verse_numbers", "include_verse_numbers":
			set = func(b bool) { d.Options.IncludeVerseNumbers = b }
		case "footnotes", "include_footnotes":
			set = func(b bool) { d.Options.IncludeFootnotes = b }
		case "copyright", "include_short_copyright":
			set = func(b bool) { d.Options.IncludeShortCopyright = b }
		case "nolinks", "no_links":
			set = func(b bool) { d.Options.SuppressCrossRefLinks = b }
		default:
			return nil, &UnknownOptionError{Key: rawKey}
		}

		b, err := parseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		set(b)
	}

	return d, nil
}

// parseBool accepts the directive boolean spellings, case-insensitive.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	default:
		return false, &InvalidBoolError{Value: value}
	}
}
