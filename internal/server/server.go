// Package server exposes the epidemic model over HTTP: a JSON API, chart
// images and a small HTML page with one form field per slider.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/san-kum/seiqr/internal/controller"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
	"github.com/san-kum/seiqr/internal/export"
)

// Server holds the immutable grid and initial state shared by all requests.
// Each request builds its own parameters and runs independently.
type Server struct {
	grid   dynamo.TimeGrid
	init   dynamo.State
	header string
	logger *log.Logger
	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithHeader sets an HTML fragment shown above the form. It is not escaped.
func WithHeader(h string) Option {
	return func(s *Server) { s.header = h }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(grid dynamo.TimeGrid, init dynamo.State, opts ...Option) *Server {
	s := &Server{
		grid:   grid,
		init:   init.Clone(),
		logger: log.New(os.Stderr, "seiqr: ", log.LstdFlags),
	}
	for _, o := range opts {
		o(s)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/defaults", s.defaults).Methods(http.MethodGet)
	r.HandleFunc("/api/simulate", s.simulate).Methods(http.MethodGet)
	r.HandleFunc("/api/plot.{format:png|svg}", s.plot).Methods(http.MethodGet)
	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.Use(s.logRequests)
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Serve blocks serving requests on l.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Printf("serving on http://%s", l.Addr())
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.Serve(l)
}

// ListenAndServe listens on addr and serves until an error occurs.
func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

type run struct {
	id     string
	inputs controller.Inputs
	params epidemic.Params
	traj   *dynamo.Trajectory
	peak   epidemic.Peak
}

func (s *Server) runFromRequest(r *http.Request) (*run, error) {
	in, err := ParseInputs(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return s.runFromInputs(in)
}

func (s *Server) runFromInputs(in controller.Inputs) (*run, error) {
	params := in.Params()
	traj, err := epidemic.Integrate(s.init, params, s.grid)
	if err != nil {
		return nil, err
	}
	peak, err := epidemic.Summarize(traj)
	if err != nil {
		return nil, err
	}

	return &run{id: xid.New().String(), inputs: in, params: params, traj: traj, peak: peak}, nil
}

// statusFor maps input errors to 400 and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMalformedInput),
		errors.Is(err, controller.ErrOutOfRange),
		errors.Is(err, controller.ErrUnknownInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Printf("error: %v", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

// writeJSON encodes v before touching the response so an encoding failure
// still yields a 500 with an error body.
func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Printf("encode response: %v", err)
		code = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

type defaultsResponse struct {
	Sliders    []controller.Slider `json:"sliders"`
	Rho        float64             `json:"rho"`
	Horizon    float64             `json:"t_max"`
	Dt         float64             `json:"dt"`
	GridPoints int                 `json:"grid_points"`
}

func (s *Server) defaults(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, defaultsResponse{
		Sliders:    controller.Sliders,
		Rho:        controller.PinnedRho,
		Horizon:    s.grid.Horizon(),
		Dt:         s.grid.Dt(),
		GridPoints: s.grid.Len(),
	})
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	res, err := s.runFromRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	doc, err := export.NewResult(res.id, res.inputs, res.params, res.traj, res.peak)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) plot(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.runFromRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteChart(&buf, res.traj, export.ChartOptions{Format: format}); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Printf("write chart: %v", err)
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	in, err := ParseInputs(r.URL.Query())
	status := ""
	if err != nil {
		code = statusFor(err)
		in = controller.DefaultInputs()
		status = err.Error()
	} else {
		res, err := s.runFromInputs(in)
		if err != nil {
			s.fail(w, err)
			return
		}
		status = res.peak.StatusLine()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pageTmpl.Execute(w, newPageData(s.header, in, status)); err != nil {
		s.logger.Printf("render page: %v", err)
	}
}
