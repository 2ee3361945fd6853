// Package param extracts and normalizes request parameters from query
// strings and form-encoded bodies.
//
// Absent fields are distinguished from explicitly empty ones: Lookup returns
// nil when the caller omitted a field, so the service layer can tell "leave
// unchanged / apply default" apart from "set to empty". List-valued fields
// travel as a single ";"-delimited string.
package param

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/eternalzzx/blog-server/internal/errs"
)

// ListSeparator delimits list-valued fields, e.g. "2;9;32;43".
const ListSeparator = ";"

// Lookup returns a pointer to the first value for key, or nil when the field
// is absent from the request. The nil pointer is the unset sentinel; an
// empty string is a present-but-empty value.
func Lookup(values url.Values, key string) *string {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

// Split breaks a ";"-delimited string into identifiers, discarding empty
// segments. Order and duplicates are preserved; deduplication is a
// service-layer concern. The result is never nil.
func Split(raw string) []string {
	out := []string{}
	for _, seg := range strings.Split(raw, ListSeparator) {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// List extracts a ";"-delimited field. It returns nil when the field is
// absent and a non-nil (possibly empty) slice when present, preserving the
// unset sentinel for list values.
func List(values url.Values, key string) []string {
	raw := Lookup(values, key)
	if raw == nil {
		return nil
	}
	return Split(*raw)
}

/// Flag normalizes a boolean field: the literal "true" is true, anything
// else, including an absent field, is false.
func Flag(values url.Values, key string) bool {
	v := Lookup(values, key)
	return v != nil && *v == "true"
}

// Overrides probes a fixed set of field names and collects the ones present
// in the request. The result is never nil and contains only supplied keys.
func Overrides(values url.Values, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if v := Lookup(values, key); v != nil {
			out[key] = *v
		}
	}
	return out
}

// ParseBody reads the raw request body and parses it as form-encoded data.
/// All body-carrying methods go through here: net/http only decodes forms
// for POST, and its parser rejects the raw ";" that delimits list values.
// A body that cannot be parsed is a parameter error.
func ParseBody(r *http.Request) (url.Values, error) {
	if r.Body == nil {
		return url.Values{}, nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errs.NewParamsError()
	}
	values, err := parseForm(string(raw))
	if err != nil {
		return nil, errs.NewParamsError()
	}
	return values, nil
}

// parseForm decodes form-encoded data, splitting pairs on "&" only. Unlike
// url.ParseQuery it accepts a raw ";" inside values, where it delimits list
// fields rather than key-value pairs.
func parseForm(s string) (url.Values, error) {
	values := url.Values{}
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}
		values.Add(key, value)
	}
	return values, nil
}
