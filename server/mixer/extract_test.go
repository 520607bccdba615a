package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMixer(t *testing.T, prober Prober) *Mixer {
	t.Helper()
	m, err := New(DefaultConfig(), prober, &testLogger{t: t})
	require.NoError(t, err)
	return m
}

func TestIsEmoji(t *testing.T) {
	assert.True(t, IsEmoji("😊"))
	assert.True(t, IsEmoji("🐶"))
	assert.True(t, IsEmoji("❤"))
	assert.True(t, IsEmoji("❤\ufe0f"))
	assert.False(t, IsEmoji("a"))
	assert.False(t, IsEmoji(" "))
	assert.False(t, IsEmoji(""))
	assert.False(t, IsEmoji("\ufe0f"))
}

func TestExtract(t *testing.T) {
	m := newTestMixer(t, &recordingProber{})

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "two emoji",
			input:    "😊🐶",
			expected: []string{"😊", "🐶"},
		},
		{
			name:     "two emoji with text around",
			input:    "mix 😊 and 🐶 please",
			expected: []string{"😊", "🐶"},
		},
		{
			name:     "more than two keeps the first two",
			input:    "😊🐶🐱",
			expected: []string{"😊", "🐶"},
		},
		{
			name:     "duplicates removed by identity",
			input:    "😊🐶😊🐶",
			expected: []string{"😊", "🐶"},
		},
		{
			name:     "duplicate before a new emoji",
			input:    "😊😊🐶",
			expected: []string{"😊", "🐶"},
		},
		{
			name:     "repeated single emoji is reported twice",
			input:    "😊😊",
			expected: []string{"😊", "😊"},
		},
		{
			name:     "single emoji",
			input:    "hi 😊",
			expected: []string{"😊"},
		},
		{
			name:     "selector keeps emoji as one character",
			input:    "❤\ufe0f🐶",
			expected: []string{"❤\ufe0f", "🐶"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Extract(tt.input))
		})
	}
}

func TestExtract_NoEmoji(t *testing.T) {
	m := newTestMixer(t, &recordingProber{})

	assert.Empty(t, m.Extract(""))
	assert.Empty(t, m.Extract("just words"))
	assert.Empty(t, m.Extract("12345 #!?"))
}

func TestExtract_InvalidInputFailsOpen(t *testing.T) {
	m := newTestMixer(t, &recordingProber{})

	assert.Empty(t, m.Extract("😊\xff🐶"))
}

func TestExtract_Deterministic(t *testing.T) {
	m := newTestMixer(t, &recordingProber{})

	first := m.Extract("🐱 😊 🐶")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, m.Extract("🐱 😊 🐶"))
	}
	assert.Equal(t, []string{"🐱", "😊"}, first)
}
