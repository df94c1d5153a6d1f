package loaders

import (
	"os"

	"github.com/spaghettifunk/pageflip/engine/config"
	"github.com/spaghettifunk/pageflip/engine/resources"
)

// ConfigLoader reads TOML or YAML engine configuration.
type ConfigLoader struct{}

func (cl *ConfigLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.ParseAs(path, data)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     path,
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(len(data)),
		Data:     cfg,
	}, nil
}

func (cl *ConfigLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	return nil
}
