// Package config loads and validates the YAML configuration that drives a
// planning run: fog-node budget, cost threshold, backbone degree factor,
// device/fog type tables, device sampling mode, and stage timing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeviceSampling selects the distribution the device placer draws
// per-router device counts from.
type DeviceSampling string

const (
	SamplingPoisson       DeviceSampling = "poisson"
	SamplingDeterministic DeviceSampling = "deterministic"
)

// defaultBackboneDegreeFactor is the default multiplier applied to average
// router degree in the high-degree promotion step.
const defaultBackboneDegreeFactor = 0.6

// ContainerConfig mirrors graph.ContainerSpec in YAML form.
type ContainerConfig struct {
	Image            string  `yaml:"image"`
	Tag              string  `yaml:"tag"`
	MemoryLimitBytes uint64  `yaml:"memory_limit_bytes"`
	CPUShare         float32 `yaml:"cpu_share"`
}

// DeviceTypeConfig is one entry of device_node_types.
type DeviceTypeConfig struct {
	Container     ContainerConfig `yaml:"container"`
	ScalingFactor uint32          `yaml:"scaling_factor"`
	AvgPerRouter  float32         `yaml:"avg_per_router"`
}

// FogTypeConfig is one entry of fog_node_types.
type FogTypeConfig struct {
	Container  ContainerConfig `yaml:"container"`
	Cost       float32         `yaml:"cost"`
	MaxClients uint32          `yaml:"max_clients"`
}

// Config is the full set of options recognised by a planning run.
type Config struct {
	MaxFogNodes          uint32             `yaml:"max_fog_nodes"`
	CostThreshold        float32            `yaml:"cost_threshold"`
	BackboneDegreeFactor float32            `yaml:"backbone_degree_factor"`
	DeviceSampling       DeviceSampling     `yaml:"device_sampling"`
	TimeMeasuring        bool               `yaml:"time_measuring"`
	DeviceNodeTypes      []DeviceTypeConfig `yaml:"device_node_types"`
	FogNodeTypes         []FogTypeConfig    `yaml:"fog_node_types"`
}

// Error reports a missing or malformed config file; fatal at startup.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("config: %s", e.Reason)
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("failed to read config file: %v", err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Path: path, Reason: fmt.Sprintf("failed to parse config file: %v", err)}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &Error{Path: path, Reason: err.Error()}
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BackboneDegreeFactor == 0 {
		c.BackboneDegreeFactor = defaultBackboneDegreeFactor
	}
	if c.DeviceSampling == "" {
		c.DeviceSampling = SamplingPoisson
	}
}

// Validate checks that every required option is present and well-formed.
func (c *Config) Validate() error {
	if c.MaxFogNodes == 0 {
		return fmt.Errorf("max_fog_nodes must be positive")
	}
	if c.CostThreshold <= 0 {
		return fmt.Errorf("cost_threshold must be positive")
	}
	if c.BackboneDegreeFactor <= 0 {
		return fmt.Errorf("backbone_degree_factor must be positive")
	}
	if c.DeviceSampling != SamplingPoisson && c.DeviceSampling != SamplingDeterministic {
		return fmt.Errorf("device_sampling must be %q or %q, got %q", SamplingPoisson, SamplingDeterministic, c.DeviceSampling)
	}
	if len(c.FogNodeTypes) == 0 {
		return fmt.Errorf("fog_node_types must not be empty")
	}
	for i, ft := range c.FogNodeTypes {
		if ft.MaxClients == 0 {
			return fmt.Errorf("fog_node_types[%d]: max_clients must be positive", i)
		}
		if ft.Cost <= 0 {
			return fmt.Errorf("fog_node_types[%d]: cost must be positive", i)
		}
	}
	for i, dt := range c.DeviceNodeTypes {
		if dt.ScalingFactor == 0 {
			return fmt.Errorf("device_node_types[%d]: scaling_factor must be positive", i)
		}
		if dt.AvgPerRouter < 0 {
			return fmt.Errorf("device_node_types[%d]: avg_per_router must not be negative", i)
		}
	}
	return nil
}
