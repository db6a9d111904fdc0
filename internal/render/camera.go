package render

// Camera is the free-camera configuration shared by both rendering modes.
// Angles are degrees; azimuth rotates around the vertical axis, negative
// elevation looks down at the subject.
type Camera struct {
	Distance  float64
	Azimuth   float64
	Elevation float64
	LookAt    [3]float64
}

// Default camera values. The batch CLI exposes each one as an independently
// overridable flag.
const (
	DefaultCameraDistance  = 3.0
	DefaultCameraAzimuth   = 45.0
	DefaultCameraElevation = -20.0
)

// DefaultCameraLookAt aims at a point one unit above the origin, roughly hip
// height for humanoid models.
var DefaultCameraLookAt = [3]float64{0, 0, 1}

func DefaultCamera() Camera {
	return Camera{
		Distance:  DefaultCameraDistance,
		Azimuth:   DefaultCameraAzimuth,
		Elevation: DefaultCameraElevation,
		LookAt:    DefaultCameraLookAt,
	}
}
