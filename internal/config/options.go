package config

import (
	"github.com/emufog/emufog/internal/domain/graph"
	"github.com/emufog/emufog/internal/domain/placement"
)

func toContainerSpec(c ContainerConfig) graph.ContainerSpec {
	return graph.ContainerSpec{
		Image:            c.Image,
		Tag:              c.Tag,
		MemoryLimitBytes: c.MemoryLimitBytes,
		CPUShare:         c.CPUShare,
	}
}

// DeviceTypes converts the configured device_node_types into the domain
// placement.DeviceType the device placer consumes.
func (c *Config) DeviceTypes() []placement.DeviceType {
	out := make([]placement.DeviceType, len(c.DeviceNodeTypes))
	for i, dt := range c.DeviceNodeTypes {
		out[i] = placement.DeviceType{
			Container:     toContainerSpec(dt.Container),
			ScalingFactor: dt.ScalingFactor,
			AvgPerRouter:  dt.AvgPerRouter,
		}
	}
	return out
}

// FogTypes converts the configured fog_node_types into the domain
// placement.FogType the fog placer consumes.
func (c *Config) FogTypes() []placement.FogType {
	out := make([]placement.FogType, len(c.FogNodeTypes))
	for i, ft := range c.FogNodeTypes {
		out[i] = placement.FogType{
			Container:  toContainerSpec(ft.Container),
			Cost:       ft.Cost,
			MaxClients: ft.MaxClients,
		}
	}
	return out
}
