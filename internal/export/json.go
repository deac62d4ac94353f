package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null and decodes
// null as NaN. Diverging runs produce such values and encoding/json rejects
// them.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Result is the JSON document for one run.
type Result struct {
	ID      string
	Inputs  map[string]float64
	Params  map[string]float64
	Peak    epidemic.Peak
	Status  string
	Time    []float64
	Series  map[string][]float64
	Metrics map[string]float64
}

type peakDoc struct {
	MaxI  Number `json:"max_i"`
	Index int    `json:"index"`
	Time  Number `json:"time"`
}

type resultDoc struct {
	ID      string              `json:"id,omitempty"`
	Inputs  map[string]Number   `json:"inputs,omitempty"`
	Params  map[string]Number   `json:"params"`
	Peak    peakDoc             `json:"peak"`
	Status  string              `json:"status"`
	Time    []Number            `json:"time"`
	Series  map[string][]Number `json:"series"`
	Metrics map[string]Number   `json:"metrics,omitempty"`
}

// NewResult assembles a Result. inputs may be nil.
func NewResult(id string, inputs map[string]float64, params epidemic.Params, tr *dynamo.Trajectory, peak epidemic.Peak) (*Result, error) {
	if tr == nil || tr.Len() == 0 {
		return nil, ErrNoData
	}

	series := make(map[string][]float64, epidemic.NumCompartments)
	for c, name := range epidemic.CompartmentNames {
		series[name] = tr.Series(c)
	}

	return &Result{
		ID:      id,
		Inputs:  inputs,
		Params:  params.Map(),
		Peak:    peak,
		Status:  peak.StatusLine(),
		Time:    append([]float64(nil), tr.Times...),
		Series:  series,
		Metrics: tr.Metrics,
	}, nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	series := make(map[string][]Number, len(r.Series))
	for name, v := range r.Series {
		series[name] = toNumbers(v)
	}
	return json.Marshal(resultDoc{
		ID:     r.ID,
		Inputs: toNumberMap(r.Inputs),
		Params: toNumberMap(r.Params),
		Peak: peakDoc{
			MaxI:  Number(r.Peak.MaxI),
			Index: r.Peak.Index,
			Time:  Number(r.Peak.Time),
		},
		Status:  r.Status,
		Time:    toNumbers(r.Time),
		Series:  series,
		Metrics: toNumberMap(r.Metrics),
	})
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var doc resultDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	var series map[string][]float64
	if doc.Series != nil {
		series = make(map[string][]float64, len(doc.Series))
		for name, v := range doc.Series {
			series[name] = fromNumbers(v)
		}
	}
	*r = Result{
		ID:     doc.ID,
		Inputs: fromNumberMap(doc.Inputs),
		Params: fromNumberMap(doc.Params),
		Peak: epidemic.Peak{
			MaxI:  float64(doc.Peak.MaxI),
			Index: doc.Peak.Index,
			Time:  float64(doc.Peak.Time),
		},
		Status:  doc.Status,
		Time:    fromNumbers(doc.Time),
		Series:  series,
		Metrics: fromNumberMap(doc.Metrics),
	}
	return nil
}

// WriteJSON encodes r with two-space indentation.
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(rd io.Reader) (*Result, error) {
	var r Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func toNumbers(v []float64) []Number {
	if v == nil {
		return nil
	}
	out := make([]Number, len(v))
	for i, f := range v {
		out[i] = Number(f)
	}
	return out
}

func fromNumbers(v []Number) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	for i, n := range v {
		out[i] = float64(n)
	}
	return out
}

func toNumberMap(m map[string]float64) map[string]Number {
	if m == nil {
		return nil
	}
	out := make(map[string]Number, len(m))
	for k, f := range m {
		out[k] = Number(f)
	}
	return out
}

func fromNumberMap(m map[string]Number) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, n := range m {
		out[k] = float64(n)
	}
	return out
}
