package renderer

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrTypeConfigInvalid is the error type of rejected camera or render settings
const ErrTypeConfigInvalid = "config_invalid"

// CameraConfig contains all configuration parameters for creating a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction, defaults to +Y
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter, 0 disables depth of field
	FocusDistance float64   // Distance to the focus plane, 0 means |LookFrom - LookAt|
	Samples       int       // Rays per pixel
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	if override.Aperture > 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance > 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.Samples > 0 {
		result.Samples = override.Samples
	}
	return result
}

// Validate reports the first setting that cannot produce a valid camera
func (c CameraConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New("image size must be positive").
			WithType(ErrTypeConfigInvalid).
			WithTag("width", c.Width).
			WithTag("height", c.Height)

	case c.Samples <= 0:
		return errors.New("samples per pixel must be positive").
			WithType(ErrTypeConfigInvalid).
			WithTag("samples", c.Samples)

	case c.VFov <= 0 || c.VFov >= 180:
		return errors.New("vertical field of view must be in (0, 180) degrees").
			WithType(ErrTypeConfigInvalid).
			WithTag("vfov", c.VFov)

	case c.Aperture < 0:
		return errors.New("aperture must not be negative").
			WithType(ErrTypeConfigInvalid).
			WithTag("aperture", c.Aperture)

	case c.FocusDistance < 0:
		return errors.New("focus distance must not be negative").
			WithType(ErrTypeConfigInvalid).
			WithTag("focus_distance", c.FocusDistance)

	case c.LookFrom == c.LookAt:
		return errors.New("camera position and look-at point coincide").
			WithType(ErrTypeConfigInvalid).
			WithTag("look_from", c.LookFrom)
	}
	return nil
}

// Camera generates rays for rendering. It is immutable once built and
// shared by every worker.
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera coordinate system basis vectors
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	lookDirection := config.LookFrom.Subtract(config.LookAt)
	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = lookDirection.Length()
	}

	// Orthonormal basis: w points backwards, u right, v up
	w := lookDirection.Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := halfHeight * float64(config.Width) / float64(config.Height)

	horizontal := u.Multiply(2 * halfWidth * focusDistance)
	vertical := v.Multiply(2 * halfHeight * focusDistance)
	lowerLeftCorner := config.LookFrom.
		Subtract(u.Multiply(halfWidth * focusDistance)).
		Subtract(v.Multiply(halfHeight * focusDistance)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a jittered ray through pixel (x, y), with y counted
// from the bottom row. With a non-zero aperture the origin is spread over
// the lens and the direction still meets the same point on the focus plane.
func (c *Camera) GetRay(x, y int, sampler core.Sampler) core.Ray {
	jx, jy := sampler.Get2D()
	s := (float64(x) + jx) / float64(c.config.Width)
	t := (float64(y) + jy) / float64(c.config.Height)

	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.SampleInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Rays generates the configured number of sample rays for pixel (x, y)
func (c *Camera) Rays(x, y int, sampler core.Sampler) []core.Ray {
	rays := make([]core.Ray, c.config.Samples)
	for i := range rays {
		rays[i] = c.GetRay(x, y, sampler)
	}
	return rays
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
