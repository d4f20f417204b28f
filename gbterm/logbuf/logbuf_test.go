package logbuf

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_RecentNewestFirst(t *testing.T) {
	b := New(3)
	assert.Nil(t, b.Recent(0))

	for _, msg := range []string{"one", "two", "three", "four"} {
		b.Add(Entry{Message: msg})
	}

	got := b.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, "four", got[0].Message)
	assert.Equal(t, "three", got[1].Message)
	assert.Equal(t, "two", got[2].Message)

	assert.Len(t, b.Recent(2), 2)
}

func TestBuffer_AddBumpsVersion(t *testing.T) {
	b := New(4)
	v := b.Version()

	b.Add(Entry{Message: "x"})
	assert.Greater(t, b.Version(), v)
}

func TestHandler_Attrs(t *testing.T) {
	b := New(10)
	logger := slog.New(NewHandler(b, slog.LevelDebug)).With("component", "driver").WithGroup("stats")

	logger.Info("Frame done", "frames", 3)

	got := b.Recent(1)
	require.Len(t, got, 1)
	assert.Equal(t, "Frame done component=driver stats.frames=3", got[0].Message)
	assert.Equal(t, slog.LevelInfo, got[0].Level)
}

func TestHandler_LevelVar(t *testing.T) {
	b := New(10)
	var level slog.LevelVar
	level.Set(slog.LevelWarn)
	logger := slog.New(NewHandler(b, &level))

	logger.Info("hidden")
	assert.Empty(t, b.Recent(0))

	ShiftLevel(&level, false)
	logger.Info("shown")
	got := b.Recent(0)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0].Message)
}

func TestShiftLevel_Clamps(t *testing.T) {
	var level slog.LevelVar
	level.Set(slog.LevelError)
	assert.Equal(t, slog.LevelError, ShiftLevel(&level, true))

	level.Set(slog.LevelDebug)
	assert.Equal(t, slog.LevelDebug, ShiftLevel(&level, false))
	assert.Equal(t, slog.LevelInfo, ShiftLevel(&level, true))
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 14, 15, 0, time.UTC)
	assert.Equal(t, "13:14:15 [WRN] careful", Format(Entry{Time: ts, Level: slog.LevelWarn, Message: "careful"}))
	assert.Equal(t, "13:14:15 [DBG] x", Format(Entry{Time: ts, Level: slog.LevelDebug - 2, Message: "x"}))
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
