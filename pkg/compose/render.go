package compose

// RenderConfig carries the presentation settings handed to an external
// renderer together with a payload. It is a plain value; nothing in this
// module keeps rendering state.
type RenderConfig struct {
	Elevation   float64  `json:"elevation"` // camera elevation, degrees
	Azimuth     float64  `json:"azimuth"`   // camera azimuth, degrees
	Palette     []string `json:"palette"`   // one color per prism, cycled
	WallColor   string   `json:"wallColor"`
	InnerColor  string   `json:"innerColor"`
	FloorColor  string   `json:"floorColor"`
	EdgeColor   string   `json:"edgeColor"`
	SphereAlpha float64  `json:"sphereAlpha"`
	WallAlpha   float64  `json:"wallAlpha"`
	FloorAlpha  float64  `json:"floorAlpha"`
}

// DefaultRenderConfig returns the stock camera and colors.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Elevation:   30,
		Azimuth:     45,
		Palette:     []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
		WallColor:   "lightblue",
		InnerColor:  "lightgray",
		FloorColor:  "beige",
		EdgeColor:   "black",
		SphereAlpha: 0.6,
		WallAlpha:   0.7,
		FloorAlpha:  0.5,
	}
}

// PartColor returns the palette color for the i-th prism.
func (c RenderConfig) PartColor(i int) string {
	if len(c.Palette) == 0 {
		return c.WallColor
	}
	return c.Palette[i%len(c.Palette)]
}
