package loaders

import (
	"fmt"
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/segmentio/encoding/json"
)

const (
	// ErrTypeSceneDecode is the error type of unreadable or malformed scene files
	ErrTypeSceneDecode = "scene_decode"
	// ErrTypeMaterialUnknown is the error type of unknown material kinds or references
	ErrTypeMaterialUnknown = "material_unknown"
)

// Vec3 is a JSON [x, y, z] triple
type Vec3 [3]float64

func (v Vec3) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func fromVec(v core.Vec3) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// SceneFile is the JSON document describing a scene as a list of primitives
type SceneFile struct {
	Name      string                  `json:"name,omitempty"`
	Camera    CameraFile              `json:"camera"`
	Materials map[string]MaterialFile `json:"materials"`
	Spheres   []SphereFile            `json:"spheres,omitempty"`
	Planes    []PlaneFile             `json:"planes,omitempty"`
}

// CameraFile mirrors renderer.CameraConfig
type CameraFile struct {
	LookFrom      Vec3    `json:"look_from"`
	LookAt        Vec3    `json:"look_at"`
	Up            Vec3    `json:"up"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	VFov          float64 `json:"vfov"`
	Aperture      float64 `json:"aperture,omitempty"`
	FocusDistance float64 `json:"focus_distance,omitempty"`
	Samples       int     `json:"samples"`
}

// MaterialFile describes one named material.
// Color is the albedo, transmission or glow depending on the kind.
type MaterialFile struct {
	Kind            string  `json:"kind"`
	Color           Vec3    `json:"color"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractive_index,omitempty"`
}

// SphereFile describes a sphere referencing a named material
type SphereFile struct {
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// PlaneFile describes an infinite plane referencing a named material
type PlaneFile struct {
	Point    Vec3   `json:"point"`
	Normal   Vec3   `json:"normal"`
	Material string `json:"material"`
}

// LoadFile reads a JSON scene from filename
func LoadFile(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.New("opening scene file failed").
			WithType(ErrTypeSceneDecode).
			WithTag("file", filename).
			Wrap(err)
	}
	defer file.Close()

	s, err := Load(file)
	if err != nil {
		return nil, errors.New("loading scene file failed").
			WithType(errors.Type(err)).
			WithTag("file", filename).
			Wrap(err)
	}
	return s, nil
}

// Load decodes a JSON scene. Unknown fields are rejected.
func Load(r io.Reader) (*scene.Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.New("decoding scene json failed").
			WithType(ErrTypeSceneDecode).
			Wrap(err)
	}
	return file.Scene()
}

// Scene converts the document into a renderable scene
func (f *SceneFile) Scene() (*scene.Scene, error) {
	materials := make(map[string]*material.Material, len(f.Materials))
	for name, m := range f.Materials {
		mat, err := m.material()
		if err != nil {
			return nil, errors.New("invalid material").
				WithType(ErrTypeMaterialUnknown).
				WithTag("material", name).
				Wrap(err)
		}
		materials[name] = mat
	}

	lookup := func(name string) (*material.Material, error) {
		mat, ok := materials[name]
		if !ok {
			return nil, errors.New("undefined material reference").
				WithType(ErrTypeMaterialUnknown).
				WithTag("material", name)
		}
		return mat, nil
	}

	name := f.Name
	if name == "" {
		name = "file"
	}
	s := scene.New(name, f.Camera.config())

	for i, sphere := range f.Spheres {
		mat, err := lookup(sphere.Material)
		if err != nil {
			return nil, errors.New("invalid sphere").WithTag("index", i).WithType(ErrTypeMaterialUnknown).Wrap(err)
		}
		s.AddSphere(sphere.Center.vec(), sphere.Radius, mat)
	}

	for i, plane := range f.Planes {
		mat, err := lookup(plane.Material)
		if err != nil {
			return nil, errors.New("invalid plane").WithTag("index", i).WithType(ErrTypeMaterialUnknown).Wrap(err)
		}
		normal := plane.Normal.vec()
		if normal.NearZero() {
			return nil, errors.New("plane normal must not be zero").
				WithType(ErrTypeSceneDecode).
				WithTag("index", i)
		}
		s.AddPlane(plane.Point.vec(), normal, mat)
	}

	return s, nil
}

func (c CameraFile) config() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      c.LookFrom.vec(),
		LookAt:        c.LookAt.vec(),
		Up:            c.Up.vec(),
		Width:         c.Width,
		Height:        c.Height,
		VFov:          c.VFov,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
		Samples:       c.Samples,
	}
}

func (m MaterialFile) material() (*material.Material, error) {
	kind, ok := material.ParseKind(m.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown material kind %q", m.Kind)
	}

	color := m.Color.vec()
	switch kind {
	case material.KindDiffuse:
		return material.NewLambertian(color), nil
	case material.KindBiasedDiffuse:
		return material.NewBiasedLambertian(color), nil
	case material.KindMetal:
		return material.NewMetal(color, m.Fuzz), nil
	case material.KindDielectric:
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractive index must be positive, got %v", m.RefractiveIndex)
		}
		return material.NewTintedDielectric(color, m.RefractiveIndex), nil
	case material.KindEmissive:
		return material.NewEmissive(color), nil
	case material.KindInvisible:
		return material.Invisible, nil
	default:
		return material.NewSun(), nil
	}
}

// FromScene describes s as a JSON document. Materials are named by their
// first use; shapes other than spheres and planes are rejected.
func FromScene(s *scene.Scene) (*SceneFile, error) {
	c := s.CameraConfig
	file := &SceneFile{
		Name: s.Name,
		Camera: CameraFile{
			LookFrom:      fromVec(c.LookFrom),
			LookAt:        fromVec(c.LookAt),
			Up:            fromVec(c.Up),
			Width:         c.Width,
			Height:        c.Height,
			VFov:          c.VFov,
			Aperture:      c.Aperture,
			FocusDistance: c.FocusDistance,
			Samples:       c.Samples,
		},
		Materials: map[string]MaterialFile{},
	}

	names := map[*material.Material]string{}
	nameOf := func(m *material.Material) string {
		if name, ok := names[m]; ok {
			return name
		}
		name := fmt.Sprintf("%s-%d", m.Kind, len(names))
		names[m] = name
		file.Materials[name] = MaterialFile{
			Kind:            m.Kind.String(),
			Color:           fromVec(m.Albedo),
			Fuzz:            m.Fuzz,
			RefractiveIndex: m.RefractiveIndex,
		}
		return name
	}

	for i, shape := range s.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return nil, errors.Newf("shape %d of type %T cannot be exported", i, shape).
				WithType(ErrTypeSceneDecode)
		}
		file.Spheres = append(file.Spheres, SphereFile{
			Center:   fromVec(sphere.Center),
			Radius:   sphere.Radius,
			Material: nameOf(sphere.Material),
		})
	}

	for i, hitable := range s.Planes {
		plane, ok := hitable.(*geometry.Plane)
		if !ok {
			return nil, errors.Newf("plane %d of type %T cannot be exported", i, hitable).
				WithType(ErrTypeSceneDecode)
		}
		file.Planes = append(file.Planes, PlaneFile{
			Point:    fromVec(plane.Point),
			Normal:   fromVec(plane.Normal),
			Material: nameOf(plane.Material),
		})
	}

	return file, nil
}

// Write encodes s as indented JSON
func Write(w io.Writer, s *scene.Scene) error {
	file, err := FromScene(s)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return errors.New("encoding scene json failed").
			WithType(ErrTypeSceneDecode).
			Wrap(err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.New("writing scene json failed").Wrap(err)
	}
	return nil
}
