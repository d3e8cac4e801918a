package models

import (
	"fmt"
	"path/filepath"
	"time"
)

type ServerConfigYAML struct {
	Port         string            `yaml:"port"`
	DataRoot     string            `yaml:"data_root"`
	Debug        bool              `yaml:"debug"`
	ReadTimeout  time.Duration     `yaml:"read_timeout"`
	WriteTimeout time.Duration     `yaml:"write_timeout"`
	Sources      map[string]string `yaml:"sources"`
}

func NewDefaultServerConfig() *ServerConfigYAML {
	return &ServerConfigYAML{
		Port:         "5000",
		DataRoot:     ".",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		Sources: map[string]string{
			string(SourceMarket):   "market_data",
			string(SourceMomentum): "Momentum_stock_date",
		},
	}
}

// SourceDirectories resolves relative source directories against DataRoot.
func (c *ServerConfigYAML) SourceDirectories() (SourceDirectories, error) {
	dirs := make(map[Source]string, len(c.Sources))
	for name, dir := range c.Sources {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.DataRoot, dir)
		}

		dirs[Source(name)] = dir
	}

	sourceDirs, err := NewSourceDirectories(dirs)
	if err != nil {
		return SourceDirectories{}, fmt.Errorf("ServerConfigYAML: %w", err)
	}

	return sourceDirs, nil
}
