package models

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Source names a data origin. The set of valid sources is fixed at startup.
type Source string

const (
	SourceMarket   Source = "market"
	SourceMomentum Source = "momentum"
)

const DefaultSource = SourceMarket

// SourceDirectories maps each configured source to its storage directory.
// Build it once with NewSourceDirectories; it is never mutated afterwards.
type SourceDirectories struct {
	dirs map[Source]string
}

func NewSourceDirectories(dirs map[Source]string) (SourceDirectories, error) {
	if len(dirs) == 0 {
		return SourceDirectories{}, fmt.Errorf("NewSourceDirectories: no sources configured")
	}

	copied := make(map[Source]string, len(dirs))
	for source, dir := range dirs {
		if source == "" {
			return SourceDirectories{}, fmt.Errorf("NewSourceDirectories: empty source name")
		}

		if dir == "" {
			return SourceDirectories{}, fmt.Errorf("NewSourceDirectories: empty directory for source %s", source)
		}

		copied[source] = filepath.Clean(dir)
	}

	return SourceDirectories{dirs: copied}, nil
}

// DefaultSourceDirectories returns the stock market/momentum layout rooted at dataRoot.
func DefaultSourceDirectories(dataRoot string) SourceDirectories {
	dirs, _ := NewSourceDirectories(map[Source]string{
		SourceMarket:   filepath.Join(dataRoot, "market_data"),
		SourceMomentum: filepath.Join(dataRoot, "Momentum_stock_date"),
	})

	return dirs
}

func (s SourceDirectories) Directory(source Source) (string, error) {
	dir, found := s.dirs[source]
	if !found {
		return "", NewInvalidSourceError(source)
	}

	return dir, nil
}

func (s SourceDirectories) Sources() []Source {
	sources := make([]Source, 0, len(s.dirs))
	for source := range s.dirs {
		sources = append(sources, source)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i] < sources[j]
	})

	return sources
}
