// Package testutil provides testing utilities for magicast.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockCommandExecutor provides a configurable mock for testing code
// that shells out to the image tools. Every magicast invocation goes
// through the shell, so recorded calls look like
// ("sh", "-c", "identify ...").
type MockCommandExecutor struct {
	mu sync.Mutex

	// Responses maps command patterns to their mock responses.
	// Key format: "command arg1 arg2" (space-separated command and args)
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching pattern is found.
	DefaultResponse *MockResponse

	// RecordedCalls stores all calls made to Execute for verification.
	RecordedCalls []RecordedCall

	// StrictMode causes Execute to fail if no matching response is found.
	StrictMode bool
}

// MockResponse defines the expected output for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall stores information about a command execution.
type RecordedCall struct {
	Command string
	Args    []string
	Context context.Context
}

// CommandLine reconstructs the command string handed to the shell,
// which is the most useful view for asserting on what magicast built.
func (c RecordedCall) CommandLine() string {
	if c.Command == "sh" && len(c.Args) == 2 && c.Args[0] == "-c" {
		return c.Args[1]
	}
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// NewMockCommandExecutor creates a new mock executor with empty responses.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Responses:     make(map[string]MockResponse),
		RecordedCalls: make([]RecordedCall, 0),
	}
}

// Execute returns the mocked response for the given command.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{
		Command: name,
		Args:    args,
		Context: ctx,
	})

	call := RecordedCall{Command: name, Args: args}
	key := call.CommandLine()

	// Try exact match first
	if resp, ok := m.Responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	// Fall back to prefix matching for flexibility
	for pattern, resp := range m.Responses {
		if strings.HasPrefix(key, pattern) {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}

	if m.StrictMode {
		return nil, nil, fmt.Errorf("mock: no response configured for command: %s", key)
	}

	// Non-strict mode returns empty success, which the classifier reads
	// as a successful silent invocation.
	return []byte{}, []byte{}, nil
}

// AddResponse registers a mock response for a command-line prefix.
func (m *MockCommandExecutor) AddResponse(commandPattern string, response MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[commandPattern] = response
}

// AddOutputResponse registers stdout text for a command-line prefix.
func (m *MockCommandExecutor) AddOutputResponse(commandPattern, stdout string) {
	m.AddResponse(commandPattern, MockResponse{
		Stdout: []byte(stdout),
		Stderr: []byte{},
	})
}

// AddErrorOutput registers stderr text for a command-line prefix, the
// way the image tools report failures: diagnostic text on stderr with
// an exit status magicast deliberately ignores.
func (m *MockCommandExecutor) AddErrorOutput(commandPattern, stderr string) {
	m.AddResponse(commandPattern, MockResponse{
		Stdout: []byte{},
		Stderr: []byte(stderr),
		Err:    fmt.Errorf("exit status 1"),
	})
}

// GetCalls returns all recorded calls whose command line starts with
// the given prefix.
func (m *MockCommandExecutor) GetCalls(prefix string) []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []RecordedCall
	for _, call := range m.RecordedCalls {
		if strings.HasPrefix(call.CommandLine(), prefix) {
			matches = append(matches, call)
		}
	}
	return matches
}

// CallCount returns the number of times Execute was called.
func (m *MockCommandExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RecordedCalls)
}

// Reset clears all recorded calls and responses.
func (m *MockCommandExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses = make(map[string]MockResponse)
	m.RecordedCalls = make([]RecordedCall, 0)
	m.DefaultResponse = nil
}

// IdentifyMockResponses provides pre-configured responses for the
// identify subcommand.
type IdentifyMockResponses struct{}

// Explicit returns a mock delimited -format response for the standard
// filename/width/height/type field set.
func (IdentifyMockResponses) Explicit(filename string, width, height int, imgType string) MockResponse {
	out := fmt.Sprintf("filename: %s--SEP--width: %d--SEP--height: %d--SEP--type: %s",
		filename, width, height, imgType)
	return MockResponse{Stdout: []byte(out)}
}

// Version returns a mock ImageMagick version banner.
func (IdentifyMockResponses) Version() MockResponse {
	return MockResponse{Stdout: []byte(
		"Version: ImageMagick 6.9.11-60 Q16 x86_64 2021-01-25 https://imagemagick.org\n" +
			"Copyright: (C) 1999-2021 ImageMagick Studio LLC\n")}
}
