package libraw

// CameraList returns the camera models the linked LibRaw supports, in the
// engine's order. Each call returns a fresh slice.
func CameraList() []string {
	return engineCameraList()
}

// CameraCount returns the number of supported camera models.
func CameraCount() int {
	return engineCameraCount()
}
