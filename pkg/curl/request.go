// Package curl round-trips HTTP request descriptions to and from shell
// cURL command strings: a quote-aware argument tokenizer, a semantic
// extractor that recovers method, URL, headers, body and auth metadata
// from an argument list, and a generator that re-serializes a request
// into a readable shell-escaped command.
package curl

import (
	"net/url"
	"strings"
)

// AuthType discriminates the auth metadata attached to a request.
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBearer AuthType = "bearer"
	AuthBasic  AuthType = "basic"
	AuthAPIKey AuthType = "apikey"
)

// Auth carries auth metadata extracted from a command. Only the fields
// matching Type are meaningful. This is metadata extraction only; no
// authentication is ever executed here.
type Auth struct {
	Type         AuthType `json:"type" yaml:"type"`
	Token        string   `json:"token,omitempty" yaml:"token,omitempty"`                 // bearer
	Username     string   `json:"username,omitempty" yaml:"username,omitempty"`           // basic
	Password     string   `json:"password,omitempty" yaml:"password,omitempty"`           // basic
	APIKey       string   `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`               // apikey
	APIKeyHeader string   `json:"apiKeyHeader,omitempty" yaml:"apiKeyHeader,omitempty"`   // apikey
}

// QueryParam is one query-string pair. Disabled params survive editing
// round trips but are dropped when a command is generated.
type QueryParam struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Request is a normalized HTTP request description. URL never carries a
// query string; extracted pairs live in QueryParams instead.
type Request struct {
	Method      string            `json:"method" yaml:"method"`
	URL         string            `json:"url" yaml:"url"`
	Headers     map[string]string `json:"headers" yaml:"headers,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	QueryParams []QueryParam      `json:"queryParams" yaml:"queryParams,omitempty"`
	Auth        Auth              `json:"auth" yaml:"auth,omitempty"`
}

// RequestName derives a short display name for a parsed request:
// "{METHOD} {lastPathSegment}", or "{METHOD} Request" when the URL has
// no usable path.
func RequestName(req *Request) string {
	fallback := req.Method + " Request"

	u, err := url.Parse(req.URL)
	if err != nil {
		return fallback
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return fallback
	}
	return req.Method + " " + last
}
