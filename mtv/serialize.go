package mtv

import (
	"bytes"
	"fmt"
	"io"

	"github.com/maskvox/maskvox/format"
	"github.com/maskvox/maskvox/stack"
)

// Serialize renders the voxel grid and material legend in the MTVDAT
// layout consumed by the EM solver. Extents are converted from nm to
// um in the header; the material-number stream is written in reverse
// (z,y,x) order, one integer per line.
func Serialize(grid *Grid, legend stack.Legend) (string, error) {
	writer := &bytes.Buffer{}

	serializeHeader(writer, grid)

	for zi := len(grid.Zs) - 1; zi >= 0; zi-- {
		for yi := grid.NY - 1; yi >= 0; yi-- {
			for xi := grid.NX - 1; xi >= 0; xi-- {
				material := grid.At(xi, yi, zi)
				number, ok := legend.Number(material)
				if !ok {
					return "", fmt.Errorf(
						"[voxelizer] grid.mtvdat: material %q missing from the legend", material,
					)
				}
				fmt.Fprintf(writer, "%d\n", number)
			}
		}
	}

	fmt.Fprint(writer, "\n# Material List\n")
	for _, entry := range legend.Entries {
		serializeLegendEntry(writer, entry)
	}
	fmt.Fprint(writer, "$END\n")

	return writer.String(), nil
}

func serializeHeader(writer io.Writer, grid *Grid) {
	fmt.Fprint(writer, "$DATA=GRID4D_PLUS\n")
	fmt.Fprint(writer, "% toplabel=\"Material grid\"\n")
	fmt.Fprint(writer, "% contstyle=2\n")
	fmt.Fprintf(writer, "%% xmin=%s xmax=%s nx=%d\n",
		format.Float(grid.Xs[0]/1000),
		format.Float(grid.Xs[len(grid.Xs)-1]/1000),
		len(grid.Xs),
	)
	fmt.Fprintf(writer, "%% ymin=%s ymax=%s ny=%d\n",
		format.Float(grid.Ys[0]/1000),
		format.Float(grid.Ys[len(grid.Ys)-1]/1000),
		len(grid.Ys),
	)
	fmt.Fprintf(writer, "%% zmin=%s zmax=%s nz=%d\n",
		format.Float(grid.Zs[0]/1000),
		format.Fixed(grid.Zs[len(grid.Zs)-1]/1000, 4),
		len(grid.Zs)-1,
	)
	fmt.Fprint(writer, "# Data\n")
}

func serializeLegendEntry(writer io.Writer, entry stack.Entry) {
	fmt.Fprintf(writer, "%s %d \"%s\" %s %s 0 homogeneous NA NA linear 0 0 0\n",
		entry.Type,
		entry.Number,
		entry.Material,
		format.Float(entry.N),
		format.Float(entry.K),
	)
}
