package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *ExecutionError
		want string
	}{
		{
			name: "rendering with component name",
			err:  NewExecutionError(ExecPhaseRendering, "button", stderrors.New("boom")),
			want: "rendering error in button: boom",
		},
		{
			name: "creation without component name",
			err:  NewExecutionError(ExecPhaseCreation, "", stderrors.New("no component found in exports")),
			want: "creation error: no component found in exports",
		},
		{
			name: "nil cause falls back to unknown",
			err:  NewExecutionError(ExecPhaseProps, "button", nil),
			want: "props error in button: Unknown error occurred",
		},
		{
			name: "empty cause message falls back to unknown",
			err:  NewExecutionError(ExecPhaseRendering, "card", stderrors.New("")),
			want: "rendering error in card: Unknown error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFetchErrorFormat(t *testing.T) {
	timeout := &FetchError{Component: "button", URL: "http://reg/x", Timeout: true}
	assert.Contains(t, timeout.Error(), "timed out")

	status := &FetchError{Component: "button", URL: "http://reg/x", StatusCode: 404}
	assert.Contains(t, status.Error(), "404")

	network := &FetchError{Component: "button", URL: "http://reg/x", Cause: stderrors.New("connection refused")}
	assert.Contains(t, network.Error(), "connection refused")
}

func TestCompileErrorFormat(t *testing.T) {
	withLocation := &CompileError{Filename: "button.tsx", Line: 3, Column: 7, Message: "Unexpected token"}
	assert.Equal(t, "compilation failed at button.tsx:3:7: Unexpected token", withLocation.Error())

	noLocation := &CompileError{Message: "transform panicked"}
	assert.Equal(t, "compilation failed at <source>: transform panicked", noLocation.Error())
}

func TestInferPhase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Phase
	}{
		{"validation maps to fetch", NewValidationError("componentName", "X", "bad"), PhaseFetch},
		{"fetch error maps to fetch", &FetchError{Component: "x"}, PhaseFetch},
		{"registry shape maps to fetch", &RegistryValidationError{Component: "x"}, PhaseFetch},
		{"compile error maps to compile", &CompileError{Message: "bad"}, PhaseCompile},
		{"execution error maps to execute", NewExecutionError(ExecPhaseRendering, "x", nil), PhaseExecute},
		{"unrecognized error defaults to execute", stderrors.New("mystery"), PhaseExecute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferPhase(tt.err))
		})
	}
}

func TestWrapBuildError(t *testing.T) {
	t.Run("wraps with inferred phase", func(t *testing.T) {
		inner := &CompileError{Message: "bad syntax"}
		be := WrapBuildError("button", inner)
		assert.Equal(t, "button", be.ComponentName)
		assert.Equal(t, PhaseCompile, be.Phase)
		assert.True(t, stderrors.Is(be, be))

		var ce *CompileError
		require.ErrorAs(t, be, &ce)
		assert.Equal(t, "bad syntax", ce.Message)
	})

	t.Run("never double-wraps", func(t *testing.T) {
		first := WrapBuildError("button", &FetchError{Component: "button", StatusCode: 500})
		second := WrapBuildError("button", first)
		assert.Same(t, first, second)
	})
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(&FetchError{Timeout: true}))
	assert.True(t, IsTimeout(WrapBuildError("x", &FetchError{Timeout: true})))
	assert.False(t, IsTimeout(&FetchError{StatusCode: 500}))
	assert.False(t, IsTimeout(stderrors.New("nope")))
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantLine int
		wantCol  int
		wantOK   bool
	}{
		{"colon separated", "button.tsx:3:7: Unexpected token", 3, 7, true},
		{"line column words", "parse failed at line 12, column 4", 12, 4, true},
		{"parenthesized", "error TS1005 (8,15): ';' expected", 8, 15, true},
		{"no location", "something went wrong", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col, ok := ExtractLocation(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantLine, line)
				assert.Equal(t, tt.wantCol, col)
			}
		})
	}
}
