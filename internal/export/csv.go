package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

var ErrNoData = errors.New("export: empty trajectory")

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"time", "S", "E", "I", "Q", "R"}

// WriteCSV writes one row per grid point with full float precision.
func WriteCSV(w io.Writer, tr *dynamo.Trajectory) error {
	if tr == nil || tr.Len() == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	row := make([]string, 1+epidemic.NumCompartments)
	for i, t := range tr.Times {
		row[0] = formatFloat(t)
		for c := 0; c < epidemic.NumCompartments; c++ {
			row[1+c] = formatFloat(tr.States[i][c])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
