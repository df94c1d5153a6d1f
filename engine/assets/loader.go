package assets

import "github.com/spaghettifunk/pageflip/engine/resources"

type Loader interface {
	Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to take per type parameters
	Unload(*resources.Resource) error
}
