package llm

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish turns raw provider output into a Response. Truncated output and
// output that breaks req.Schema come back as errors so the retry layer
// can ask again.
func finish(req Request, content json.RawMessage, truncated bool, model string, usage Usage) (*Response, error) {
	if truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stopEnd}, nil
}

// classify wraps a failed call by HTTP status. A 429 becomes ErrRateLimit;
// anything else counts as the provider being unavailable.
func classify(err error, status int, header http.Header) error {
	if status == http.StatusTooManyRequests {
		rl := &ErrRateLimit{Err: err}
		if header != nil {
			rl.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
		}
		return rl
	}
	return &ErrProviderUnavailable{Err: err}
}

// parseRetryAfter reads a Retry-After header given in whole seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// resolveModel expands a short alias. Anything else is taken to be a full
// model ID already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// role picks the provider's label for a message role.
func (m Message) role(user, assistant string) string {
	if m.Role == RoleAssistant {
		return assistant
	}
	return user
}
