package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide")
		env.contains(out, "# glossd")
		env.contains(out, "Quick start")
		env.contains(out, "Commands")
	})

	t.Run("matches the embedded file", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide")
		env.equals(out, testGuideContent())
	})

	t.Run("works without a database", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("guide")
		env.contains(out, "# glossd")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("guide", "nonexistent")
		assert.Error(t, err)
		env.contains(out, "Available:")
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		topic   string
		contain string
	}{
		{"search", "--whole-word"},
		{"import", "glossd import"},
		{"web", "gs_q"},
		{"config", "GLOSSD_DB"},
		{"serve", "glossd_search"},
	}

	for _, tc := range tests {
		t.Run(tc.topic, func(t *testing.T) {
			env := newTestEnv(t)

			out := env.run("guide", tc.topic)
			env.contains(out, tc.contain)
		})
	}
}

func TestLlm(t *testing.T) {
	env := newBareEnv(t)

	out := env.run("llm")
	assert.True(t, strings.Contains(out, "glossd"), "llm output should mention glossd")
}
