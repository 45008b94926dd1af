package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openuam/uamd/core/dispatch"
	"github.com/openuam/uamd/infra/feed"
	"github.com/openuam/uamd/infra/metrics"
	"github.com/openuam/uamd/sim"
)

type Config struct {
	Dispatch dispatch.Config `json:"dispatch"`
	Sim      sim.Config      `json:"sim"`
	Metrics  metrics.Config  `json:"metrics"`
	Feed     feed.Config     `json:"feed"`
}

// Load reads the configuration file, applies UAMD_-prefixed environment
// overrides, and validates the result. Keys absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("UAMD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "uamd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := Config{Dispatch: dispatch.DefaultConfig()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Sim.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Feed.SetDefaults()
	if err := cfg.Sim.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
