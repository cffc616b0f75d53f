package storage

import (
	"os"
	"regexp"
	"strings"

	"github.com/blackcoderx/curlew/pkg/curl"
	"github.com/blackcoderx/curlew/pkg/env"
)

// varPattern matches {{VAR_NAME}} or {{env:VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// SubstituteVariables replaces {{VAR}} placeholders with values from the
// environment. {{env:VAR}} references resolve against the process
// environment instead. Unresolved placeholders are kept verbatim.
func SubstituteVariables(text string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		varName = strings.TrimSpace(varName)

		if strings.HasPrefix(varName, "env:") {
			sysVar := strings.TrimPrefix(varName, "env:")
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
			return match
		}

		if val, ok := vars[varName]; ok {
			return val
		}

		return match
	})
}

// ApplyEnvironment returns a copy of the request with environment
// variables substituted into the URL, header values, query parameter
// values and body. The input request is never mutated.
func ApplyEnvironment(req *curl.Request, e env.Environment) *curl.Request {
	applied := &curl.Request{
		Method:  req.Method,
		URL:     SubstituteVariables(req.URL, e.Variables),
		Headers: make(map[string]string, len(req.Headers)),
		Body:    SubstituteVariables(req.Body, e.Variables),
		Auth:    req.Auth,
	}

	for k, v := range req.Headers {
		applied.Headers[k] = SubstituteVariables(v, e.Variables)
	}

	applied.QueryParams = make([]curl.QueryParam, 0, len(req.QueryParams))
	for _, p := range req.QueryParams {
		applied.QueryParams = append(applied.QueryParams, curl.QueryParam{
			Key:     p.Key,
			Value:   SubstituteVariables(p.Value, e.Variables),
			Enabled: p.Enabled,
		})
	}

	return applied
}
