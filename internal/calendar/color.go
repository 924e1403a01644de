package calendar

// BaseColor is the palette family a category is drawn in.
type BaseColor string

const (
	Red     BaseColor = "red"
	Pink    BaseColor = "pink"
	Purple  BaseColor = "purple"
	Orange  BaseColor = "orange"
	Green   BaseColor = "green"
	Emerald BaseColor = "emerald"
	Yellow  BaseColor = "yellow"
	Gray    BaseColor = "gray"
)

// DefaultColor is used for any category missing from the table.
const DefaultColor = Gray

var categoryColors = map[string]BaseColor{
	"りんご":  Red,
	"いちご":  Pink,
	"ぶどう":  Purple,
	"もも":   Orange,
	"トマト":  Red,
	"きゅうり": Green,
	"レタス":  Emerald,
	"米":    Yellow,
	"柑橘類":  Orange,
}

// CategoryColor resolves a category label to its base colour. Never fails.
func CategoryColor(category string) BaseColor {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultColor
}

// Intensity is a coarse four-step shade used for heat-mapping volumes.
type Intensity int

const (
	Lightest Intensity = iota
	Light
	Medium
	Darkest
)

// Shade returns the palette step for the intensity (100, 300, 500, 700).
func (i Intensity) Shade() int {
	switch i {
	case Lightest:
		return 100
	case Light:
		return 300
	case Medium:
		return 500
	default:
		return 700
	}
}

func (i Intensity) String() string {
	switch i {
	case Lightest:
		return "lightest"
	case Light:
		return "light"
	case Medium:
		return "medium"
	default:
		return "darkest"
	}
}

// Intensities lists every bucket from lightest to darkest.
func Intensities() []Intensity {
	return []Intensity{Lightest, Light, Medium, Darkest}
}

const (
	minRatio = 0.2
	maxRatio = 1.0
)

// IntensityFor buckets volume relative to maxVolume. The ratio is clamped to
// [0.2, 1.0]; a non-positive maxVolume takes the 0.2 floor.
func IntensityFor(volume, maxVolume float64) Intensity {
	ratio := minRatio
	if maxVolume > 0 {
		ratio = volume / maxVolume
	}
	if ratio < minRatio {
		ratio = minRatio
	}
	if ratio > maxRatio {
		ratio = maxRatio
	}

	switch {
	case ratio <= 0.3:
		return Lightest
	case ratio <= 0.6:
		return Light
	case ratio <= 0.8:
		return Medium
	default:
		return Darkest
	}
}
