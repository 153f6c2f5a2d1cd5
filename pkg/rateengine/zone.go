package rateengine

// Zone represents a delivery cost tier between origin and destination
// pincodes, ordered by increasing distance.
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
	ZoneD Zone = "D"
	ZoneE Zone = "E"
)

// Zones lists all five zones in tier order. A complete pricing table must
// carry an entry for each of them.
var Zones = []Zone{ZoneA, ZoneB, ZoneC, ZoneD, ZoneE}

var zoneNames = map[Zone]string{
	ZoneA: "Within City",
	ZoneB: "Regional",
	ZoneC: "Metro to Metro",
	ZoneD: "Rest of Country",
	ZoneE: "Special Zone",
}

// Name returns the display name for the zone, or an empty string for an
// unknown zone.
func (z Zone) Name() string {
	return zoneNames[z]
}

// Valid reports whether z is one of the five known zones.
func (z Zone) Valid() bool {
	_, ok := zoneNames[z]
	return ok
}

// ParseZone converts a courier-supplied zone string into a Zone.
func ParseZone(s string) (Zone, error) {
	z := Zone(s)
	if !z.Valid() {
		return "", &UnsupportedZoneError{Zone: s}
	}
	return z, nil
}
