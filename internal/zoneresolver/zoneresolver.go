// Package zoneresolver maps origin/destination pincode pairs to pricing
// zones. Zone resolution is an external concern; the rate engine only
// consumes the result.
package zoneresolver

import (
	"context"

	"github.com/shipmint/rateengine/pkg/rateengine"
)

// Resolver defines the interface for pincode-to-zone resolution.
type Resolver interface {
	Resolve(ctx context.Context, originPincode, destinationPincode string) (rateengine.Zone, string, error)
}

// Static resolves zones from pincode prefixes with a coarse heuristic:
// same pincode is local, same first three digits is regional, recognized
// metro prefixes map metro-to-metro, special-region prefixes map to the
// special zone, everything else is rest-of-country. Good enough for wiring
// and tests; production deployments plug in a real serviceability dataset.
type Static struct {
	metroPrefixes   map[string]bool
	specialPrefixes map[string]bool
}

// NewStatic creates a resolver with the default metro and special-region
// prefix tables.
func NewStatic() *Static {
	return &Static{
		metroPrefixes: map[string]bool{
			"11": true, // Delhi
			"40": true, // Mumbai
			"56": true, // Bengaluru
			"60": true, // Chennai
			"70": true, // Kolkata
			"50": true, // Hyderabad
		},
		specialPrefixes: map[string]bool{
			"18": true, // J&K
			"19": true, // J&K
			"78": true, // North East
			"79": true, // North East
		},
	}
}

// Resolve implements Resolver.
func (s *Static) Resolve(ctx context.Context, originPincode, destinationPincode string) (rateengine.Zone, string, error) {
	if len(originPincode) < 3 || len(destinationPincode) < 3 {
		return "", "", &rateengine.UnsupportedZoneError{Zone: originPincode + "-" + destinationPincode}
	}

	zone := s.classify(originPincode, destinationPincode)
	return zone, zone.Name(), nil
}

func (s *Static) classify(origin, dest string) rateengine.Zone {
	if s.specialPrefixes[origin[:2]] || s.specialPrefixes[dest[:2]] {
		return rateengine.ZoneE
	}
	if origin == dest {
		return rateengine.ZoneA
	}
	if origin[:3] == dest[:3] {
		return rateengine.ZoneB
	}
	if s.metroPrefixes[origin[:2]] && s.metroPrefixes[dest[:2]] {
		return rateengine.ZoneC
	}
	return rateengine.ZoneD
}

// Fixed always resolves to one zone; used in tests.
type Fixed struct {
	Zone rateengine.Zone
}

// Resolve implements Resolver.
func (f *Fixed) Resolve(ctx context.Context, originPincode, destinationPincode string) (rateengine.Zone, string, error) {
	return f.Zone, f.Zone.Name(), nil
}
