package prefabs

import (
	"fmt"

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

// PlayerSpec tunes the player body and controller. Speeds are in pixels
// per second, Gravity in pixels per second squared.
type PlayerSpec struct {
	Width        float64         `yaml:"width"`
	Height       float64         `yaml:"height"`
	Mass         float64         `yaml:"mass"`
	Friction     float64         `yaml:"friction"`
	MoveSpeed    float64         `yaml:"move_speed"`
	Acceleration float64         `yaml:"acceleration"`
	JumpSpeed    float64         `yaml:"jump_speed"`
	DashSpeed    float64         `yaml:"dash_speed"`
	DashFrames   int             `yaml:"dash_frames"`
	CoyoteFrames int             `yaml:"coyote_frames"`
	Gravity      float64         `yaml:"gravity"`
	RenderLayer  int             `yaml:"render_layer"`
	Audio        []AudioClipSpec `yaml:"audio"`
}

// AudioClipSpec is a sound effect. File is relative to assets/audio/sfx.
type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// CameraSpec tunes how the camera follows the player.
type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	LookAheadX float64 `yaml:"look_ahead_x"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return &spec, nil
}
