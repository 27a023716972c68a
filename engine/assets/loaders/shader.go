package loaders

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

// ShaderLoader reads GLSL source as text.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read shader %s: %w", path, core.ErrLoadFailure)
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeShader,
		Name:     "shader",
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	return nil
}
