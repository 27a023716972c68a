package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Image resource type. */
	ResourceTypeImage ResourceType = iota
	/** @brief Scene description resource type. */
	ResourceTypeScene
	/** @brief Shader source resource type. */
	ResourceTypeShader
)

func (r ResourceType) String() string {
	switch r {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeScene:
		return "scene"
	case ResourceTypeShader:
		return "shader"
	}
	return "unknown"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The type of loader which produced this resource. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
