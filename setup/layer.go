package setup

// LayerType tags a row of the input material table.
type LayerType string

// Layer types recognized in the input table. Unknown types contribute
// nothing to the assembled stack.
const (
	Substrate  LayerType = "Substrate"
	Multilayer LayerType = "ML"
	Capping    LayerType = "Capping"
	Absorber   LayerType = "Absorber"
)

// LayerRow is one row of the material layer table, given top-to-bottom.
type LayerRow struct {
	Type      LayerType
	Material  string
	Thickness float64 // nm
	N         float64
	K         float64
}

// LayerTable is the raw input material table in top-to-bottom order.
type LayerTable []LayerRow

// Group returns the rows of the given type in input order.
func (t LayerTable) Group(typ LayerType) []LayerRow {
	rows := []LayerRow{}
	for _, row := range t {
		if row.Type == typ {
			rows = append(rows, row)
		}
	}
	return rows
}

// GroupBottomUp returns the rows of the given type reversed to
// bottom-to-top order.
func (t LayerTable) GroupBottomUp(typ LayerType) []LayerRow {
	rows := t.Group(typ)
	reversed := make([]LayerRow, len(rows))
	for i, row := range rows {
		reversed[len(rows)-1-i] = row
	}
	return reversed
}

// AbsorberMaterials returns the set of material ids in the absorber group.
func (t LayerTable) AbsorberMaterials() map[string]bool {
	materials := map[string]bool{}
	for _, row := range t.Group(Absorber) {
		materials[row.Material] = true
	}
	return materials
}
