package models

// categoryLabels maps a Category to its human-readable label.
var categoryLabels = map[Category]string{
	CategorySolar:      "Solar",
	CategoryWind:       "Wind",
	CategoryStorage:    "Energy Storage",
	CategoryHydro:      "Hydro",
	CategoryBiomass:    "Biomass",
	CategoryEfficiency: "Energy Efficiency",
}

// Label returns the display label for a Category.
// Unknown categories are returned verbatim.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
