package loaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

// SceneFormat is the encoding of a scene file.
type SceneFormat int

const (
	SceneFormatTOML SceneFormat = iota
	SceneFormatYAML
)

// SceneFormatFromPath picks the format from the file extension.
func SceneFormatFromPath(path string) (SceneFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return SceneFormatTOML, nil
	case ".yaml", ".yml":
		return SceneFormatYAML, nil
	}
	return 0, fmt.Errorf("scene file %s: %w", path, core.ErrUnsupportedFormat)
}

type sceneFile struct {
	Name        string         `toml:"name" yaml:"name"`
	UseLighting bool           `toml:"use_lighting" yaml:"use_lighting"`
	Camera      *cameraFile    `toml:"camera" yaml:"camera"`
	Textures    []textureFile  `toml:"textures" yaml:"textures"`
	Materials   []materialFile `toml:"materials" yaml:"materials"`
	Lights      []lightFile    `toml:"lights" yaml:"lights"`
	Objects     []objectFile   `toml:"objects" yaml:"objects"`
}

type cameraFile struct {
	Position []float32 `toml:"position" yaml:"position"`
	Target   []float32 `toml:"target" yaml:"target"`
	Up       []float32 `toml:"up" yaml:"up"`
	Fov      float32   `toml:"fov" yaml:"fov"`
	Near     float32   `toml:"near" yaml:"near"`
	Far      float32   `toml:"far" yaml:"far"`
}

type textureFile struct {
	Path string `toml:"path" yaml:"path"`
	Tag  string `toml:"tag" yaml:"tag"`
}

type materialFile struct {
	Tag             string    `toml:"tag" yaml:"tag"`
	AmbientColor    []float32 `toml:"ambient_color" yaml:"ambient_color"`
	AmbientStrength float32   `toml:"ambient_strength" yaml:"ambient_strength"`
	DiffuseColor    []float32 `toml:"diffuse_color" yaml:"diffuse_color"`
	SpecularColor   []float32 `toml:"specular_color" yaml:"specular_color"`
	Shininess       float32   `toml:"shininess" yaml:"shininess"`
}

type lightFile struct {
	Position      []float32 `toml:"position" yaml:"position"`
	AmbientColor  []float32 `toml:"ambient_color" yaml:"ambient_color"`
	DiffuseColor  []float32 `toml:"diffuse_color" yaml:"diffuse_color"`
	SpecularColor []float32 `toml:"specular_color" yaml:"specular_color"`
}

type objectFile struct {
	Name     string    `toml:"name" yaml:"name"`
	Shape    string    `toml:"shape" yaml:"shape"`
	Scale    []float32 `toml:"scale" yaml:"scale"`
	Rotation []float32 `toml:"rotation" yaml:"rotation"`
	Position []float32 `toml:"position" yaml:"position"`
	Color    []float32 `toml:"color" yaml:"color"`
	Material string    `toml:"material" yaml:"material"`
	Texture  string    `toml:"texture" yaml:"texture"`
	UVScale  []float32 `toml:"uv_scale" yaml:"uv_scale"`
}

/**
 * @brief Loads scene descriptions. Relative texture paths are resolved
 * against BaseDir.
 */
type SceneLoader struct {
	BaseDir string
}

func (sl *SceneLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	format, err := SceneFormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scene %s: %w", path, core.ErrLoadFailure)
	}
	scene, err := ParseScene(data, format)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if sl.BaseDir != "" {
		for i, t := range scene.Textures {
			if !filepath.IsAbs(t.Path) {
				scene.Textures[i].Path = filepath.Join(sl.BaseDir, t.Path)
			}
		}
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeScene,
		Name:     scene.Name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     scene,
	}, nil
}

func (sl *SceneLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	return nil
}

/**
 * @brief Decodes and validates a scene. Every validation problem is reported
 * in the returned error, not only the first.
 */
func ParseScene(data []byte, format SceneFormat) (*metadata.SceneDescription, error) {
	var file sceneFile
	switch format {
	case SceneFormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("%v: %w", err, core.ErrInvalidConfig)
		}
	case SceneFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("%v: %w", err, core.ErrInvalidConfig)
		}
	default:
		return nil, fmt.Errorf("scene format %d: %w", format, core.ErrUnsupportedFormat)
	}

	scene, err := file.build()
	if err != nil {
		return nil, err
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

func (f *sceneFile) build() (*metadata.SceneDescription, error) {
	scene := &metadata.SceneDescription{
		Name:        f.Name,
		UseLighting: f.UseLighting,
		Camera:      metadata.DefaultCamera(),
	}

	var err error
	if c := f.Camera; c != nil {
		if c.Position != nil {
			if scene.Camera.Position, err = vec3(c.Position, "camera.position"); err != nil {
				return nil, err
			}
		}
		if c.Target != nil {
			if scene.Camera.Target, err = vec3(c.Target, "camera.target"); err != nil {
				return nil, err
			}
		}
		if c.Up != nil {
			if scene.Camera.Up, err = vec3(c.Up, "camera.up"); err != nil {
				return nil, err
			}
		}
		if c.Fov != 0 {
			scene.Camera.FovDegrees = c.Fov
		}
		if c.Near != 0 {
			scene.Camera.Near = c.Near
		}
		if c.Far != 0 {
			scene.Camera.Far = c.Far
		}
	}

	for _, t := range f.Textures {
		scene.Textures = append(scene.Textures, metadata.TextureSource{Path: t.Path, Tag: t.Tag})
	}

	for i, m := range f.Materials {
		field := fmt.Sprintf("materials[%d]", i)
		mat := metadata.Material{Tag: m.Tag, AmbientStrength: m.AmbientStrength, Shininess: m.Shininess}
		if mat.AmbientColor, err = vec3(m.AmbientColor, field+".ambient_color"); err != nil {
			return nil, err
		}
		if mat.DiffuseColor, err = vec3(m.DiffuseColor, field+".diffuse_color"); err != nil {
			return nil, err
		}
		if mat.SpecularColor, err = vec3(m.SpecularColor, field+".specular_color"); err != nil {
			return nil, err
		}
		scene.Materials = append(scene.Materials, mat)
	}

	for i, l := range f.Lights {
		field := fmt.Sprintf("lights[%d]", i)
		var light metadata.LightSource
		if light.Position, err = vec3(l.Position, field+".position"); err != nil {
			return nil, err
		}
		if light.AmbientColor, err = vec3(l.AmbientColor, field+".ambient_color"); err != nil {
			return nil, err
		}
		if light.DiffuseColor, err = vec3(l.DiffuseColor, field+".diffuse_color"); err != nil {
			return nil, err
		}
		if light.SpecularColor, err = vec3(l.SpecularColor, field+".specular_color"); err != nil {
			return nil, err
		}
		scene.Lights = append(scene.Lights, light)
	}

	for i, o := range f.Objects {
		obj, err := o.build(i)
		if err != nil {
			return nil, err
		}
		scene.Objects = append(scene.Objects, obj)
	}
	return scene, nil
}

func (o *objectFile) build(index int) (metadata.ObjectDescriptor, error) {
	field := fmt.Sprintf("objects[%d]", index)
	desc := metadata.ObjectDescriptor{
		Name: o.Name,
		Transform: metadata.TransformRequest{
			Scale: math.NewVec3One(),
		},
		Appearance: metadata.Appearance{
			Material: o.Material,
			Texture:  o.Texture,
		},
	}
	if desc.Name == "" {
		desc.Name = fmt.Sprintf("%s#%d", o.Shape, index)
	}

	shape, err := metadata.ParseShape(o.Shape)
	if err != nil {
		return desc, fmt.Errorf("%s: %w", field, err)
	}
	desc.Shape = shape

	if o.Scale != nil {
		if desc.Transform.Scale, err = vec3(o.Scale, field+".scale"); err != nil {
			return desc, err
		}
	}
	if o.Rotation != nil {
		if desc.Transform.RotationDegrees, err = vec3(o.Rotation, field+".rotation"); err != nil {
			return desc, err
		}
	}
	if o.Position != nil {
		if desc.Transform.Position, err = vec3(o.Position, field+".position"); err != nil {
			return desc, err
		}
	}

	switch len(o.Color) {
	case 0:
	case 3:
		c := math.NewVec4(o.Color[0], o.Color[1], o.Color[2], 1)
		desc.Appearance.Color = &c
	case 4:
		c := math.NewVec4(o.Color[0], o.Color[1], o.Color[2], o.Color[3])
		desc.Appearance.Color = &c
	default:
		return desc, fmt.Errorf("%s.color needs 3 or 4 components, got %d: %w", field, len(o.Color), core.ErrInvalidConfig)
	}

	switch len(o.UVScale) {
	case 0:
	case 2:
		uv := math.NewVec2(o.UVScale[0], o.UVScale[1])
		desc.Appearance.UVScale = &uv
	default:
		return desc, fmt.Errorf("%s.uv_scale needs 2 components, got %d: %w", field, len(o.UVScale), core.ErrInvalidConfig)
	}
	return desc, nil
}

func vec3(v []float32, field string) (math.Vec3, error) {
	switch len(v) {
	case 0:
		return math.NewVec3Zero(), nil
	case 1:
		return math.NewVec3Splat(v[0]), nil
	case 3:
		return math.NewVec3(v[0], v[1], v[2]), nil
	}
	return math.Vec3{}, fmt.Errorf("%s needs 1 or 3 components, got %d: %w", field, len(v), core.ErrInvalidConfig)
}
