package fare

// =============================================================================
// ROUTE - A line and its base fare
// =============================================================================

// Route identifies a transit line and the base fare it charges before any
// policy, discount or transfer adjustment.
type Route struct {
	Line     string
	BaseFare Money
}

func NewRoute(line string, baseFare Money) Route {
	return Route{Line: line, BaseFare: baseFare}
}

// Urban returns a route charging the urban base fare.
func (t *Tariff) Urban(line string) Route {
	return Route{Line: line, BaseFare: t.UrbanFare}
}

// Interurban returns a route charging the interurban base fare.
func (t *Tariff) Interurban(line string) Route {
	return Route{Line: line, BaseFare: t.InterurbanFare}
}
