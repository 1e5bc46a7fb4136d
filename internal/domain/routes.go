package domain

import "github.com/Krontiva/rider-web-app/internal/geo"

// Place is a named location of the fixed route catalog.
type Place struct {
	Name string
	// Coordinates is the display string, "<deg>° <N|S>, <deg>° <E|W>".
	Coordinates string
}

// Coordinate parses the display coordinates.
func (p Place) Coordinate() geo.Coordinate {
	return geo.ParseCoordinate(p.Coordinates)
}

// Route is a static catalog entry of the zone pricing form. The catalog is
// configuration, not computed state.
type Route struct {
	ID      int
	Pickup  Place
	Dropoff Place
}

// Name derives the route name used as the price-entry key.
func (r Route) Name() string {
	return r.Pickup.Name + " to " + r.Dropoff.Name
}

// DistanceKm computes the straight-line pickup-to-dropoff distance.
func (r Route) DistanceKm() float64 {
	return geo.Distance(r.Pickup.Coordinate(), r.Dropoff.Coordinate())
}

var defaultRoutes = [...]Route{
	{
		ID:      1,
		Pickup:  Place{Name: "Madina Zongo Junction", Coordinates: "5.6764° N, -0.1775° W"},
		Dropoff: Place{Name: "Boundary Road, East Legon", Coordinates: "5.6390° N, -0.1675° W"},
	},
	{
		ID:      2,
		Pickup:  Place{Name: "Oxford Street, Osu", Coordinates: "5.5520° N, -0.1950° W"},
		Dropoff: Place{Name: "Ministries (Accra)", Coordinates: "5.5523° N, -0.2021° W"},
	},
	{
		ID:      3,
		Pickup:  Place{Name: "Oxford Street, Osu", Coordinates: "5.5520° N, -0.1950° W"},
		Dropoff: Place{Name: "Airport Residential Area", Coordinates: "5.6095° N, -0.1680° W"},
	},
	{
		ID:      4,
		Pickup:  Place{Name: "Oxford Street, Osu", Coordinates: "5.5520° N, -0.1950° W"},
		Dropoff: Place{Name: "Tudu, Accra Central", Coordinates: "5.5524° N, -0.2020° W"},
	},
	{
		ID:      5,
		Pickup:  Place{Name: "Lapaz Total", Coordinates: "5.6050° N, -0.2160° W"},
		Dropoff: Place{Name: "Kwashieman", Coordinates: "5.6020° N, -0.2040° W"},
	},
	{
		ID:      6,
		Pickup:  Place{Name: "Tudu, Accra Central", Coordinates: "5.5524° N, -0.2020° W"},
		Dropoff: Place{Name: "Legon University", Coordinates: "5.6500° N, -0.1860° W"},
	},
	{
		ID:      7,
		Pickup:  Place{Name: "Abeka", Coordinates: "5.5800° N, -0.2100° W"},
		Dropoff: Place{Name: "Awoshie", Coordinates: "5.5800° N, -0.2300° W"},
	},
	{
		ID:      8,
		Pickup:  Place{Name: "Flower Pot, Spintex", Coordinates: "5.6010° N, -0.1420° W"},
		Dropoff: Place{Name: "Kpone Barrier", Coordinates: "5.5830° N, -0.1000° W"},
	},
}

// DefaultRoutes returns the fixed route catalog of the zone pricing form.
func DefaultRoutes() []Route {
	routes := make([]Route, len(defaultRoutes))
	copy(routes, defaultRoutes[:])
	return routes
}
