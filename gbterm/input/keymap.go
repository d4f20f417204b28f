package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// KeyMap maps key names to actions. A KeyMap is read only by the UI
// goroutine; replacements are delivered to it, never mutated in place.
type KeyMap map[string]Action

// Lookup returns the action bound to key.
func (km KeyMap) Lookup(key string) (Action, bool) {
	act, ok := km[key]
	return act, ok
}

func (km KeyMap) Clone() KeyMap {
	out := make(KeyMap, len(km))
	for k, v := range km {
		out[k] = v
	}
	return out
}

// Help lists the frontend bindings as "key: description", sorted by key.
func (km KeyMap) Help() string {
	var parts []string
	for key, act := range km {
		info := GetInfo(act)
		if info.Category != CategoryFrontend || info.Description == "" {
			continue
		}
		parts = append(parts, key+": "+info.Description)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// ParseKeyMap reads "key = action" lines on top of base. Blank lines and
// lines starting with '#' are ignored. "key = none" removes a binding.
func ParseKeyMap(r io.Reader, base KeyMap) (KeyMap, error) {
	km := base.Clone()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, name, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key = action", lineNo)
		}
		key = strings.TrimSpace(key)
		name = strings.TrimSpace(name)
		if key == "" {
			// "= = log+" binds the '=' key itself
			if rest, found := strings.CutPrefix(name, "="); found {
				key, name = "=", strings.TrimSpace(rest)
			} else {
				return nil, fmt.Errorf("line %d: empty key", lineNo)
			}
		}

		if strings.EqualFold(name, "none") {
			delete(km, key)
			continue
		}
		act, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		km[key] = act
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading key map: %w", err)
	}

	return km, nil
}

// LoadKeyMap reads a key map file layered over DefaultKeyMap.
func LoadKeyMap(path string) (KeyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key map: %w", err)
	}
	defer f.Close()

	km, err := ParseKeyMap(f, DefaultKeyMap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}
