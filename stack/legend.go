package stack

import (
	"github.com/maskvox/maskvox/setup"
)

// Entry is one row of the material legend.
type Entry struct {
	// Type is "ambient" for the reserved first row, "material" otherwise.
	Type     string
	Number   int
	Material string
	N        float64
	K        float64
}

// Legend is the ordered material legend written to the output file.
// Rows are written verbatim, duplicates included; the number lookup
// keeps the last occurrence of each material id.
type Legend struct {
	Entries []Entry

	numbers map[string]int
}

// BuildLegend builds the material legend from the input layer table.
// Air occupies the two reserved leading rows with n=1, k=0. The defect
// entry copies its optical constants from the configured defect
// material.
func BuildLegend(s setup.Setup) Legend {
	entries := []Entry{
		{Type: "ambient", Material: AmbientMaterialID, N: 1, K: 0},
		{Type: "material", Material: AmbientMaterialID, N: 1, K: 0},
	}

	appendGroup := func(rows []setup.LayerRow) {
		for _, row := range rows {
			entries = append(entries, Entry{
				Type:     "material",
				Material: row.Material,
				N:        row.N,
				K:        row.K,
			})
		}
	}

	appendGroup(s.Layers.GroupBottomUp(setup.Absorber))
	appendGroup(s.Layers.GroupBottomUp(setup.Substrate))
	appendGroup(s.Layers.GroupBottomUp(setup.Multilayer))
	appendGroup(s.Layers.GroupBottomUp(setup.Capping))

	if s.Defect.Present() {
		defect := Entry{Type: "material", Material: DefectMaterialID, N: 1, K: 0}
		for _, entry := range entries {
			if entry.Material == s.Defect.Material {
				defect.N = entry.N
				defect.K = entry.K
				break
			}
		}
		entries = append(entries, defect)
	}

	// Material numbers start at 0 with both air rows sharing number 0.
	numbers := map[string]int{}
	for i := range entries {
		if i > 0 {
			entries[i].Number = i - 1
		}
		numbers[entries[i].Material] = entries[i].Number
	}

	return Legend{Entries: entries, numbers: numbers}
}

// Number returns the material number assigned to the given material id.
func (l Legend) Number(material string) (int, bool) {
	number, ok := l.numbers[material]
	return number, ok
}
