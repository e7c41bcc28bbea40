package telemetry_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/leighmacdonald/halgui/internal/telemetry"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	buffer := telemetry.NewBuffer()
	buffer.AddLine("one")
	buffer.AddLine("two")
	require.Empty(t, buffer.Lines())

	buffer.Update()
	require.Equal(t, []string{"one", "two"}, buffer.Lines())
	require.Equal(t, "one\ntwo", buffer.String())

	buffer.Update()
	require.Empty(t, buffer.Lines())
	require.Equal(t, 2, buffer.Flushes())
}

func TestMultiAndLogger(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	buffer := telemetry.NewBuffer()
	sink := telemetry.Multi{buffer, telemetry.NewLogger(logger)}

	sink.AddLine("hello")
	sink.Update()

	require.Equal(t, []string{"hello"}, buffer.Lines())
	require.Contains(t, out.String(), "Telemetry frame")
	require.Contains(t, out.String(), "hello")
}
