package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverJSON(t *testing.T) {
	want := map[string]any{"a": float64(1)}

	tests := []struct {
		name  string
		input string
	}{
		{name: "plain JSON", input: `{"a":1}`},
		{name: "json fenced block", input: "```json\n{\"a\":1}\n```"},
		{name: "untagged fenced block", input: "```\n{\"a\":1}\n```"},
		{name: "fenced block after prose", input: "Here you go:\n```json\n{\"a\":1}\n```\nThanks"},
		{name: "surrounding noise", input: `noise {"a":1} noise`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecoverJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRecoverJSON_SpanUsesLastBrace(t *testing.T) {
	got, err := RecoverJSON(`result: {"outer": {"inner": true}} done`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"outer": map[string]any{"inner": true}}, got)
}

func TestRecoverJSON_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "prose", input: "not json at all"},
		{name: "empty", input: ""},
		{name: "array is not an object", input: `[1, 2, 3]`},
		{name: "null", input: "null"},
		{name: "broken object", input: `{"a": 1,,}`},
		{name: "two objects", input: `{"a":1} and {"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecoverJSON(tt.input)
			assert.ErrorIs(t, err, ErrJSONRecovery)
		})
	}
}

func TestRecoverJSON_ErrorPreviewIsTruncated(t *testing.T) {
	input := strings.Repeat("x", 500)

	_, err := RecoverJSON(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), strings.Repeat("x", 200)+"...")
	assert.NotContains(t, err.Error(), strings.Repeat("x", 201))
}
