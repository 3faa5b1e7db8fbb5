package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okContent = json.RawMessage(`{"ok":true}`)

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func invalid() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", []MockResponse{{Content: okContent}}, false, 1},
		{"transient then success", []MockResponse{down(), {Content: okContent}}, false, 2},
		{"all attempts fail", []MockResponse{down(), down(), down()}, true, 3},
		{"invalid response retried once", []MockResponse{invalid(), invalid(), {Content: okContent}}, true, 2},
		{"invalid then success", []MockResponse{invalid(), {Content: okContent}}, false, 2},
		{"max tokens is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}}, true, 1},
		{"unknown errors are transient", []MockResponse{{Err: errors.New("connection reset")}, {Content: okContent}}, false, 2},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, {Content: okContent}}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != string(okContent) {
					t.Fatalf("unexpected content: %s", resp.Content)
				}
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(down(), down(), MockResponse{Content: okContent})
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRetry_OnRetryHook(t *testing.T) {
	var attempts []int
	cfg := retryConfig()
	cfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		attempts = append(attempts, attempt)
		if wait < 0 {
			t.Errorf("negative wait %v", wait)
		}
	}

	mock := NewMockProvider(down(), down(), MockResponse{Content: okContent})
	if _, err := WithRetry(mock, cfg).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(attempts) != "[1 2]" {
		t.Fatalf("unexpected retry attempts: %v", attempts)
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 2 * time.Second, Multiplier: 10}}
	for attempt := range 5 {
		wait := r.backoff(attempt, errors.New("x"))
		if wait > 2400*time.Millisecond {
			t.Fatalf("attempt %d: wait %v exceeds cap plus jitter", attempt, wait)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{errors.New("plain"), false},
		{&ErrProviderUnavailable{}, true},
		{&ErrRateLimit{Err: errors.New("429")}, true},
		{fmt.Errorf("wrapped: %w", &ErrInvalidResponse{Err: errors.New("bad")}), true},
		{&ErrMaxTokensExceeded{}, true},
		{context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		if got := IsUnavailable(tt.err); got != tt.want {
			t.Errorf("IsUnavailable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
