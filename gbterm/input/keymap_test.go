package input

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_GameButtons(t *testing.T) {
	tests := []struct {
		key    string
		button Button
	}{
		{"Up", Up},
		{"Down", Down},
		{"Left", Left},
		{"Right", Right},
		{"z", A},
		{"x", B},
		{"Enter", Start},
		{"Backspace", Select},
		{"w", Up},
		{"d", Right},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			act, ok := DefaultKeyMap.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, CategoryGameInput, GetInfo(act).Category)

			b, ok := act.Button()
			require.True(t, ok)
			assert.Equal(t, tt.button, b)
		})
	}
}

func TestAction_FrontendHasNoButton(t *testing.T) {
	for _, act := range []Action{EmulatorQuit, EmulatorSnapshot, EmulatorLogToggle, DebugLogLevelIncrease} {
		_, ok := act.Button()
		assert.False(t, ok, act.String())
		assert.Equal(t, CategoryFrontend, GetInfo(act).Category)
	}
}

func TestParseButton(t *testing.T) {
	b, err := ParseButton("start")
	require.NoError(t, err)
	assert.Equal(t, Start, b)

	b, err = ParseButton("SELECT")
	require.NoError(t, err)
	assert.Equal(t, Select, b)

	_, err = ParseButton("turbo")
	assert.Error(t, err)

	assert.Equal(t, "Button(42)", Button(42).String())
}

func TestParseKeyMap(t *testing.T) {
	src := `
# remap A/B onto j/k
j = a
k = b
z = none
= = log+
Enter = Start
`
	km, err := ParseKeyMap(strings.NewReader(src), DefaultKeyMap)
	require.NoError(t, err)

	act, ok := km.Lookup("j")
	require.True(t, ok)
	assert.Equal(t, GBButtonA, act)

	act, ok = km.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, GBButtonB, act)

	_, ok = km.Lookup("z")
	assert.False(t, ok, "none removes the binding")

	act, ok = km.Lookup("=")
	require.True(t, ok)
	assert.Equal(t, DebugLogLevelIncrease, act)

	act, ok = km.Lookup("Enter")
	require.True(t, ok)
	assert.Equal(t, GBButtonStart, act)

	_, ok = DefaultKeyMap.Lookup("z")
	assert.True(t, ok, "defaults must not be modified")
}

func TestParseKeyMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "missing separator", src: "j a\n"},
		{name: "unknown action", src: "j = turbo\n"},
		{name: "empty key", src: " = a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeyMap(strings.NewReader(tt.src), DefaultKeyMap)
			assert.Error(t, err)
		})
	}
}

func TestLoadKeyMap_MissingFile(t *testing.T) {
	_, err := LoadKeyMap(filepath.Join(t.TempDir(), "nope.keys"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchKeyMap_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbterm.keys")
	require.NoError(t, os.WriteFile(path, []byte("j = a\n"), 0o644))

	var (
		mu   sync.Mutex
		seen []KeyMap
	)
	w, err := WatchKeyMap(path, func(km KeyMap) {
		mu.Lock()
		seen = append(seen, km)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("j = b\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if len(seen) == 0 {
			return false
		}
		act, ok := seen[len(seen)-1].Lookup("j")
		return ok && act == GBButtonB
	}, 3*time.Second, 20*time.Millisecond)
}

func TestKeyMap_HelpListsFrontendBindings(t *testing.T) {
	help := DefaultKeyMap.Help()
	assert.Contains(t, help, "F12: Save a PNG snapshot")
	assert.Contains(t, help, "q: Quit")
	assert.NotContains(t, help, "A button", "game buttons are not listed")

	km := KeyMap{"q": EmulatorQuit, "Escape": EmulatorQuit, "z": GBButtonA}
	assert.Equal(t, "Escape: Quit, q: Quit", km.Help())
}
