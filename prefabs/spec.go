package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec describes the demo scene.
type SceneSpec struct {
	CustomAsset   string            `yaml:"custom_asset"`
	Ground        GroundSpec        `yaml:"ground"`
	Sun           SunSpec           `yaml:"sun"`
	Camera        CameraSpec        `yaml:"camera"`
	SpatialSphere SpatialSphereSpec `yaml:"spatial_sphere"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate rejects values the scene cannot be built from.
func (s *SceneSpec) Validate() error {
	if strings.TrimSpace(s.CustomAsset) == "" {
		return fmt.Errorf("custom_asset is required")
	}
	e := s.SpatialSphere.Emitter
	if e.MinDistance < 0 || e.MaxDistance <= e.MinDistance {
		return fmt.Errorf("emitter distances must satisfy 0 <= min < max, got %g..%g", e.MinDistance, e.MaxDistance)
	}
	if r := s.SpatialSphere.LoopRegion; r != nil && (r.Start < 0 || r.End <= r.Start) {
		return fmt.Errorf("loop_region must satisfy 0 <= start < end, got %g..%g", r.Start, r.End)
	}
	return nil
}

type Vec3Spec [3]float64

type GroundSpec struct {
	Size  float64    `yaml:"size"`
	Color *YAMLColor `yaml:"color"`
}

type SunSpec struct {
	Shadows     bool     `yaml:"shadows"`
	Illuminance float64  `yaml:"illuminance"`
	LookAt      Vec3Spec `yaml:"look_at"`
	Up          Vec3Spec `yaml:"up"`
}

type CameraSpec struct {
	Position    Vec3Spec `yaml:"position"`
	LookAt      Vec3Spec `yaml:"look_at"`
	FovDegrees  float64  `yaml:"fov_degrees"`
	Near        float64  `yaml:"near"`
	Far         float64  `yaml:"far"`
	Speed       float64  `yaml:"speed"`
	Sensitivity float64  `yaml:"sensitivity"`
	TurnSpeed   float64  `yaml:"turn_speed"`
}

type SpatialSphereSpec struct {
	Position   Vec3Spec    `yaml:"position"`
	RotationY  float64     `yaml:"rotation_y"`
	Volume     float64     `yaml:"volume"`
	Emitter    EmitterSpec `yaml:"emitter"`
	LoopRegion *RegionSpec `yaml:"loop_region"`
	Marker     MarkerSpec  `yaml:"marker"`
}

type EmitterSpec struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

type RegionSpec struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type MarkerSpec struct {
	Offset    Vec3Spec   `yaml:"offset"`
	Radius    float64    `yaml:"radius"`
	BaseColor *YAMLColor `yaml:"base_color"`
	Emissive  *YAMLColor `yaml:"emissive"`
}

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG colour name.
type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
