package entity

// Platform is one solid surface of a stage
type Platform struct {
	ID    SurfaceID
	Rect  Rect
	Layer LayerMask
}

// Zone is a trigger area. Water zones carry a movement modifier;
// kill zones only use Mask to pick the layers they affect.
type Zone struct {
	Rect     Rect
	Mask     LayerMask
	Modifier Modifier
}

// Stage represents the geometry of the current stage in world units
type Stage struct {
	Width    float64
	Height   float64
	TileSize float64

	Platforms  []Platform
	WaterZones []Zone
	KillZones  []Zone

	SpawnX float64
	SpawnY float64
}

// Surface returns the platform with the given id
func (s *Stage) Surface(id SurfaceID) (Platform, bool) {
	for _, pl := range s.Platforms {
		if pl.ID == id {
			return pl, true
		}
	}
	return Platform{}, false
}
