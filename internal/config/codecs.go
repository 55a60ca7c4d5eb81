package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"a2dp-bridge/internal/a2dp"
)

// codecPriorityFile is the on-disk shape of a codec priority table.
//
//	priorities:
//	  - codec: ldac
//	    priority: 1000000
//	  - codec: sbc
//	offload:
//	  - codec: aac
type codecPriorityFile struct {
	Priorities []codecPriorityEntry `yaml:"priorities"`
	Offload    []codecPriorityEntry `yaml:"offload"`
}

type codecPriorityEntry struct {
	Codec    string `yaml:"codec"`
	Priority int    `yaml:"priority"`
}

// LoadCodecPriorities reads a YAML codec priority table and returns the
// preference and offload orderings.
func LoadCodecPriorities(path string) (priorities, offload []a2dp.CodecConfig, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config: read codec priorities: %w", err)
	}

	var file codecPriorityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("config: parse codec priorities: %w", err)
	}

	priorities, err = codecConfigs(file.Priorities)
	if err != nil {
		return nil, nil, err
	}
	offload, err = codecConfigs(file.Offload)
	if err != nil {
		return nil, nil, err
	}
	return priorities, offload, nil
}

func codecConfigs(entries []codecPriorityEntry) ([]a2dp.CodecConfig, error) {
	configs := make([]a2dp.CodecConfig, 0, len(entries))
	for _, e := range entries {
		codecType, err := codecTypeByName(e.Codec)
		if err != nil {
			return nil, err
		}
		configs = append(configs, a2dp.CodecConfig{
			CodecType: codecType,
			Priority:  e.Priority,
		})
	}
	return configs, nil
}

func codecTypeByName(name string) (int, error) {
	switch name {
	case "sbc":
		return a2dp.CodecTypeSBC, nil
	case "aac":
		return a2dp.CodecTypeAAC, nil
	case "aptx":
		return a2dp.CodecTypeAptX, nil
	case "aptx-hd":
		return a2dp.CodecTypeAptXHD, nil
	case "ldac":
		return a2dp.CodecTypeLDAC, nil
	default:
		return 0, fmt.Errorf("config: unknown codec %q", name)
	}
}
