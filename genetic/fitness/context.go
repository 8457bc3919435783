package fitness

// Context provides additional information for fitness calculation
type Context interface {
	Get(key string) (float64, bool)
}

// MapContext is a simple map-based Context implementation
type MapContext map[string]float64

func (c MapContext) Get(key string) (float64, bool) {
	v, ok := c[key]
	return v, ok
}

// Standard context keys
const (
	// ContextZoneProximity is 1 when the route ends near the landing zone, 0 otherwise
	ContextZoneProximity = "zone_proximity"
)
