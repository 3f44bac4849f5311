// Package config loads deckcheck settings from an ini file. Every setting
// has a default so running without a config file works.
package config

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

type Config struct {
	// DataPath points at the generated commanders.json document.
	DataPath string
	// StorePath is the sqlite key-value store; empty means in-memory only.
	StorePath string
	// ProviderBaseURL overrides the Archidekt API endpoint.
	ProviderBaseURL string
	// ImportTTL bounds the age of cached deck imports.
	ImportTTL time.Duration
	// ListenAddr is the HTTP API bind address used by the serve command.
	ListenAddr string
}

func Default() Config {
	return Config{
		DataPath:   "data/commanders.json",
		StorePath:  "deckcheck.sqlite",
		ImportTTL:  24 * time.Hour,
		ListenAddr: ":8080",
	}
}

// Load reads settings from path, falling back to defaults for anything the
// file leaves out. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}
	sec := f.Section("deckcheck")

	if v := sec.Key("data_path").String(); v != "" {
		c.DataPath = v
	}
	if v := sec.Key("store_path").String(); v != "" {
		c.StorePath = v
	}
	if v := sec.Key("provider_base_url").String(); v != "" {
		c.ProviderBaseURL = v
	}
	if v, err := sec.Key("import_ttl_hours").Int(); err == nil && v > 0 {
		c.ImportTTL = time.Duration(v) * time.Hour
	}
	if v := sec.Key("listen_addr").String(); v != "" {
		c.ListenAddr = v
	}
	return c, nil
}
