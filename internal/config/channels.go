package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// channelKinds mirrors domain.RecordKind values; config cannot import domain.
var channelKinds = []string{"announcement", "uniform", "vehicle", "personnel"}

type channelsFile struct {
	Channels map[string]string `yaml:"channels"`
}

// LoadChannels reads the kind -> channel target map from a YAML file.
// An empty path yields an empty map.
//
//	channels:
//	  announcement: "123456789012345678"
//	  vehicle: "https://discord.com/api/webhooks/1/abc"
func LoadChannels(path string) (map[string]string, error) {
	channels := make(map[string]string)
	if strings.TrimSpace(path) == "" {
		return channels, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read channels file: %w", err)
	}

	var parsed channelsFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse channels file: %w", err)
	}

	for kind, target := range parsed.Channels {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if !knownKind(kind) {
			return nil, fmt.Errorf("channels file: unknown record kind %q", kind)
		}
		if target = strings.TrimSpace(target); target != "" {
			channels[kind] = target
		}
	}
	return channels, nil
}

func knownKind(kind string) bool {
	for _, k := range channelKinds {
		if k == kind {
			return true
		}
	}
	return false
}
