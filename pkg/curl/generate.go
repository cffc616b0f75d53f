package curl

import (
	"net/url"
	"sort"
	"strings"
)

// maxLineLength is the column threshold for wrapping generated commands
// onto continuation lines.
const maxLineLength = 80

// Generate serializes a request back into a cURL command. It always
// produces a valid command: -X is omitted for GET (curl's implicit
// default), disabled query params are dropped, headers that the auth
// flags would duplicate are skipped, and any value containing shell
// metacharacters is single-quoted. Short commands stay on one line;
// longer ones wrap greedily at 80 columns with backslash continuations.
func Generate(req Request) string {
	parts := []string{"curl"}

	if req.Method != "" && req.Method != "GET" {
		parts = append(parts, "-X", req.Method)
	}

	parts = append(parts, shellEscape(buildURL(req)))

	// Headers the auth section will emit itself, lowercased.
	skip := make(map[string]bool)
	switch req.Auth.Type {
	case AuthBearer:
		skip["authorization"] = true
	case AuthAPIKey:
		skip[strings.ToLower(req.Auth.APIKeyHeader)] = true
	}

	names := make([]string, 0, len(req.Headers))
	for name := range req.Headers {
		if skip[strings.ToLower(name)] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, "-H", shellEscape(name+": "+req.Headers[name]))
	}

	switch req.Auth.Type {
	case AuthBearer:
		parts = append(parts, "-H", shellEscape("Authorization: Bearer "+req.Auth.Token))
	case AuthBasic:
		credentials := req.Auth.Username
		if req.Auth.Password != "" {
			credentials += ":" + req.Auth.Password
		}
		parts = append(parts, "-u", shellEscape(credentials))
	case AuthAPIKey:
		parts = append(parts, "-H", shellEscape(req.Auth.APIKeyHeader+": "+req.Auth.APIKey))
	}

	if strings.TrimSpace(req.Body) != "" {
		parts = append(parts, "--data-raw", shellEscape(req.Body))
	}

	return layout(parts)
}

// buildURL re-appends the enabled query parameters to the base URL. When
// the base does not parse as a URL the pairs are appended manually, with
// the separator chosen by whether the base already contains a query.
func buildURL(req Request) string {
	var enabled []QueryParam
	for _, p := range req.QueryParams {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return req.URL
	}

	pairs := make([]string, 0, len(enabled))
	for _, p := range enabled {
		pairs = append(pairs, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	query := strings.Join(pairs, "&")

	if u, err := url.Parse(req.URL); err == nil {
		if u.RawQuery != "" {
			u.RawQuery += "&" + query
		} else {
			u.RawQuery = query
		}
		return u.String()
	}

	separator := "?"
	if strings.Contains(req.URL, "?") {
		separator = "&"
	}
	return req.URL + separator + query
}

// shellEscape single-quotes a value containing whitespace, quotes,
// dollar signs or backslashes, using the '\'' dance for embedded single
// quotes. Plain values pass through untouched.
func shellEscape(value string) string {
	if !strings.ContainsAny(value, " '\"$\\") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// layout joins the argument parts into one line when the command is
// short, otherwise wraps greedily whenever the running line would pass
// the column limit. The wrap check runs per appended token, so a flag
// and its value can land on different lines near the threshold.
func layout(parts []string) string {
	if len(parts) <= 3 {
		return strings.Join(parts, " ")
	}

	var lines []string
	current := parts[0]
	for _, part := range parts[1:] {
		if len(current)+1+len(part) > maxLineLength {
			lines = append(lines, current+" \\")
			current = "  " + part
		} else {
			current += " " + part
		}
	}
	lines = append(lines, current)

	return strings.Join(lines, "\n")
}
