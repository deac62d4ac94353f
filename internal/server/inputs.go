package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/san-kum/seiqr/internal/controller"
)

var ErrMalformedInput = errors.New("server: malformed input")

// ParseInputs reads slider values from a query string. Absent sliders keep
// their defaults and unrelated keys are ignored.
func ParseInputs(q url.Values) (controller.Inputs, error) {
	in := controller.DefaultInputs()
	for _, s := range controller.Sliders {
		raw := q.Get(s.Name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", s.Name, raw, ErrMalformedInput)
		}
		in[s.Name] = v
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// Query encodes inputs in the form accepted by ParseInputs.
func Query(in controller.Inputs) url.Values {
	q := url.Values{}
	for _, s := range controller.Sliders {
		if v, ok := in[s.Name]; ok {
			q.Set(s.Name, strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return q
}
