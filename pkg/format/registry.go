package format

import (
	"errors"
	"fmt"

	"github.com/blackcoderx/curlew/pkg/env"
)

// ErrUnrecognizedFormat is returned when no registered strategy claims
// the content. This is distinct from a parse error: the content may be
// syntactically valid (e.g. well-formed JSON) but simply not an
// environment shape any strategy recognizes.
var ErrUnrecognizedFormat = errors.New("unrecognized environment format")

// Registry holds the ordered set of registered format strategies.
// It is populated once at construction and read-only afterwards, so
// detection sweeps may run concurrently from multiple callers.
type Registry struct {
	strategies []Strategy
}

// NewRegistry creates a registry with the built-in strategies registered
// in their fixed arbitration order: native JSON, Postman, dotenv.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewJSONStrategy())
	r.Register(NewPostmanStrategy())
	r.Register(NewDotenvStrategy())
	return r
}

// Register appends a strategy. Registration order matters: confidence
// ties are resolved in favor of the earliest registered strategy.
func (r *Registry) Register(s Strategy) {
	r.strategies = append(r.strategies, s)
}

// Formats returns the descriptors of all registered strategies in
// registration order.
func (r *Registry) Formats() []FormatInfo {
	infos := make([]FormatInfo, 0, len(r.strategies))
	for _, s := range r.strategies {
		infos = append(infos, s.Info())
	}
	return infos
}

// Get returns the strategy registered under the given format name.
func (r *Registry) Get(name string) (Strategy, bool) {
	for _, s := range r.strategies {
		if s.Info().Name == name {
			return s, true
		}
	}
	return nil, false
}

// Detect runs confidence scoring across every registered strategy and
// returns the strategy with the highest non-zero score. A strictly
// greater score is required to displace an earlier strategy, so ties go
// to registration order. If every strategy scores zero, Detect returns
// ErrUnrecognizedFormat.
func (r *Registry) Detect(content string) (Strategy, float64, error) {
	var best Strategy
	bestScore := 0.0

	for _, s := range r.strategies {
		score := s.Confidence(content)
		if score > bestScore {
			best = s
			bestScore = score
		}
	}

	if best == nil {
		return nil, 0, ErrUnrecognizedFormat
	}
	return best, bestScore, nil
}

// DetectAndParse classifies the content, parses it with the winning
// strategy and runs that strategy's validator. The validation result is
// returned as data so the caller can decide how to surface errors and
// warnings; only detection and parse failures are returned as errors.
func (r *Registry) DetectAndParse(content string) ([]env.Environment, env.Validation, error) {
	strategy, _, err := r.Detect(content)
	if err != nil {
		return nil, env.Validation{}, err
	}

	envs, err := strategy.Parse(content)
	if err != nil {
		return nil, env.Validation{}, fmt.Errorf("parsing as %s: %w", strategy.Info().DisplayName, err)
	}

	return envs, strategy.Validate(envs), nil
}
