package curl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyCommand is returned when the command contains no arguments
// after stripping a leading "curl" token.
var ErrEmptyCommand = errors.New("empty cURL command")

// ErrMissingURL is returned when no URL-shaped argument is found.
var ErrMissingURL = errors.New("URL not found in cURL command")

// knownMethods is the set of verbs accepted from -X/--request.
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// apiKeyHeaders are the header name variants recognized as API-key auth,
// checked in this order.
var apiKeyHeaders = []string{"X-API-Key", "X-Api-Key", "API-Key", "apikey", "x-api-key"}

// CommandResult is one entry of a batch parse. Index is the 1-based
// position of the input command; exactly one of Request and Err is set.
type CommandResult struct {
	Index   int
	Request *Request
	Err     error
}

// Parse tokenizes a raw cURL command and extracts a normalized request.
// Flag order in the source is irrelevant except for flag/value adjacency.
func Parse(raw string) (*Request, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyCommand
	}

	tokens := Tokenize(raw)
	if len(tokens) > 0 && tokens[0] == "curl" {
		tokens = tokens[1:]
	}

	req := &Request{
		Method:      extractMethod(tokens),
		Headers:     extractHeaders(tokens),
		Body:        extractBody(tokens),
		QueryParams: []QueryParam{},
	}

	rawURL, ok := extractURL(tokens)
	if !ok {
		return nil, ErrMissingURL
	}

	req.Auth = extractAuth(tokens, req.Headers)
	req.URL, req.QueryParams = splitQuery(rawURL)

	return req, nil
}

// ParseAll parses a batch of raw commands. Each input is isolated: one
// malformed command never prevents the others from parsing. Failure
// messages embed the 1-based position of the offending command.
func ParseAll(raws []string) []CommandResult {
	results := make([]CommandResult, 0, len(raws))
	for i, raw := range raws {
		req, err := Parse(raw)
		if err != nil {
			err = fmt.Errorf("command %d: %w", i+1, err)
		}
		results = append(results, CommandResult{Index: i + 1, Request: req, Err: err})
	}
	return results
}

// extractMethod returns the verb following the first -X/--request flag
// when it is one of the known methods, defaulting to GET.
func extractMethod(tokens []string) string {
	for i, tok := range tokens {
		if (tok == "-X" || tok == "--request") && i+1 < len(tokens) {
			method := strings.ToUpper(tokens[i+1])
			if knownMethods[method] {
				return method
			}
			break
		}
	}
	return "GET"
}

// extractURL prefers an explicit --url value, then falls back to the
// first non-flag token that looks like an HTTP URL.
func extractURL(tokens []string) (string, bool) {
	for i, tok := range tokens {
		if tok == "--url" && i+1 < len(tokens) {
			return tokens[i+1], true
		}
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			continue
		}
		if strings.HasPrefix(tok, "http://") || strings.HasPrefix(tok, "https://") {
			return tok, true
		}
	}
	return "", false
}

// extractHeaders collects every -H/--header value containing a colon,
// split on the first colon with both sides trimmed. Later duplicates
// overwrite earlier ones.
func extractHeaders(tokens []string) map[string]string {
	headers := make(map[string]string)
	for i, tok := range tokens {
		if (tok != "-H" && tok != "--header") || i+1 >= len(tokens) {
			continue
		}
		value := tokens[i+1]
		key, val, found := strings.Cut(value, ":")
		if !found {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return headers
}

// extractBody finds the request body. Data sources are checked in fixed
// precedence order and only the first matching source is honored:
// spaced -d/--data/--data-raw, then --data-binary, then the
// equals-attached and flag-attached spellings.
func extractBody(tokens []string) string {
	for i, tok := range tokens {
		if (tok == "-d" || tok == "--data" || tok == "--data-raw") && i+1 < len(tokens) {
			return tokens[i+1]
		}
	}
	for i, tok := range tokens {
		if tok == "--data-binary" && i+1 < len(tokens) {
			return tokens[i+1]
		}
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "--data=") {
			return strings.TrimPrefix(tok, "--data=")
		}
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "-d") && len(tok) > 2 && !strings.HasPrefix(tok, "--") {
			return tok[2:]
		}
	}
	return ""
}

// extractAuth resolves auth metadata, first matching rule wins: a Bearer
// Authorization header, then -u/--user basic credentials, then a known
// API-key header variant, and finally none.
func extractAuth(tokens []string, headers map[string]string) Auth {
	for name, value := range headers {
		if !strings.EqualFold(name, "Authorization") {
			continue
		}
		if len(value) >= 7 && strings.EqualFold(value[:7], "Bearer ") {
			return Auth{Type: AuthBearer, Token: strings.TrimSpace(value[7:])}
		}
	}

	for i, tok := range tokens {
		if (tok == "-u" || tok == "--user") && i+1 < len(tokens) {
			username, password, _ := strings.Cut(tokens[i+1], ":")
			return Auth{Type: AuthBasic, Username: username, Password: password}
		}
	}

	for _, name := range apiKeyHeaders {
		if value, ok := headers[name]; ok {
			return Auth{Type: AuthAPIKey, APIKey: value, APIKeyHeader: name}
		}
	}

	return Auth{Type: AuthNone}
}

// splitQuery strips the query string off a URL, returning the bare URL
// and the pairs in their original order. If the URL does not parse, the
// query is cut manually at the first question mark.
func splitQuery(rawURL string) (string, []QueryParam) {
	params := []QueryParam{}

	var base, rawQuery string
	if u, err := url.Parse(rawURL); err == nil {
		rawQuery = u.RawQuery
		u.RawQuery = ""
		base = u.String()
	} else {
		base, rawQuery, _ = strings.Cut(rawURL, "?")
	}

	if rawQuery == "" {
		return base, params
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		params = append(params, QueryParam{Key: key, Value: value, Enabled: true})
	}

	return base, params
}
