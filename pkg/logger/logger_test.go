package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel}, // desconocido cae a info
	}
	for _, c := range cases {
		assert.Equal(t, c.want, parseLevel(c.in), "nivel %q", c.in)
	}
}

func TestNew_NivelPorDefecto(t *testing.T) {
	l := New(Config{Env: "production", Service: "flowgrid-test"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
