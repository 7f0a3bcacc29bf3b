// Package corrections loads the user correction overlay for the text
// formatter. The file is read once at startup; the resulting Set is immutable
// and safe to share across goroutines.
//
// File format (~/.config/voxterm/corrections.toml):
//
//	[phrases]
//	"kube control" = "kubectl"
//
//	[symbols]
//	"arrow" = "->"
//	"fat arrow" = "=>"
//
//	[replacements]
//	"kubernetes" = "k8s"
package corrections

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Entry is one spoken-form to replacement mapping.
type Entry struct {
	Spoken      string
	Replacement string
}

// Set is the merged, immutable overlay. Phrases and Replacements are ordered
// longest spoken form first so a shorter entry can never shadow a longer one.
// Symbols map a single spoken word to a symbol injected with prefix join
// behavior.
type Set struct {
	Phrases      []Entry
	Symbols      []Entry
	Replacements []Entry
}

type rawFile struct {
	Phrases      map[string]string `toml:"phrases"`
	Symbols      map[string]string `toml:"symbols"`
	Replacements map[string]string `toml:"replacements"`
}

// DefaultPath returns ~/.config/voxterm/corrections.toml, honoring the
// VOXTERM_CORRECTIONS environment override.
func DefaultPath() (string, error) {
	if p := os.Getenv("VOXTERM_CORRECTIONS"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "voxterm", "corrections.toml"), nil
}

// Load reads the overlay file at path. A missing file is not an error: it
// yields an empty Set. A malformed file is an error; callers are expected to
// continue with built-ins only.
func Load(path string) (*Set, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Set{}, nil
	}

	var raw rawFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("parse corrections file %s: %w", path, err)
	}

	return &Set{
		Phrases:      sortedEntries(raw.Phrases),
		Symbols:      sortedEntries(raw.Symbols),
		Replacements: sortedEntries(raw.Replacements),
	}, nil
}

func (s *Set) Count() int {
	return len(s.Phrases) + len(s.Symbols) + len(s.Replacements)
}

// sortedEntries lowercases spoken forms and orders them longest first,
// breaking ties lexicographically so the order is deterministic.
func sortedEntries(m map[string]string) []Entry {
	entries := make([]Entry, 0, len(m))
	for spoken, repl := range m {
		entries = append(entries, Entry{Spoken: strings.ToLower(spoken), Replacement: repl})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].Spoken) != len(entries[j].Spoken) {
			return len(entries[i].Spoken) > len(entries[j].Spoken)
		}
		return entries[i].Spoken < entries[j].Spoken
	})
	return entries
}
