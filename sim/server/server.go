// Package server exposes the driver API of a sim.Instance over HTTP so that
// out-of-process agents (e.g. a learning policy) can step an episode.
//
// All handlers serialize on one mutex: the instance is still mutated by exactly
// one request at a time, in arrival order.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jobshop-sim/jobshop-sim/sim"
	"github.com/jobshop-sim/jobshop-sim/sim/trace"
)

// MaxBodyBytes bounds request bodies; larger bodies are rejected with 413.
const MaxBodyBytes = 8 << 20

// Server wraps one instance and its current session.
type Server struct {
	mu      sync.Mutex
	inst    *sim.Instance
	session string
	router  *mux.Router
}

// StateResponse is returned by reset, observe and assign.
type StateResponse struct {
	Session  string              `json:"session"`
	Clock    int64               `json:"clock"`
	Done     bool                `json:"done"`
	Makespan int64               `json:"makespan"`
	Choices  []sim.MachineChoice `json:"choices,omitempty"`
}

// AssignRequest is the body of POST /v1/assign.
type AssignRequest struct {
	JobID int `json:"job_id"`
	OpID  int `json:"op_id"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New creates a server around inst and starts a session.
func New(inst *sim.Instance) *Server {
	s := &Server{inst: inst, session: uuid.NewString()}
	r := mux.NewRouter()
	r.HandleFunc("/v1/reset", s.Reset).Methods(http.MethodPost)
	r.HandleFunc("/v1/observe", s.Observe).Methods(http.MethodPost)
	r.HandleFunc("/v1/assign", s.Assign).Methods(http.MethodPost)
	r.HandleFunc("/v1/done", s.Done).Methods(http.MethodGet)
	r.HandleFunc("/v1/makespan", s.Makespan).Methods(http.MethodGet)
	r.HandleFunc("/v1/history", s.History).Methods(http.MethodGet)
	r.HandleFunc("/v1/metrics", s.Metrics).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reset handles POST /v1/reset. An optional JSON sim.InstanceConfig body
// replaces the instance; an empty body resets the current one.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	var cfg sim.InstanceConfig
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&cfg)
	hasBody := err == nil
	if err != nil && !errors.Is(err, io.EOF) {
		writeDecodeError(w, "invalid instance config", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if hasBody {
		inst, err := sim.NewInstance(cfg)
		if err != nil {
			writeSimError(w, err)
			return
		}
		s.inst = inst
	} else {
		s.inst.Reset()
	}
	s.session = uuid.NewString()
	logrus.Infof("Session %s: reset with %d jobs, %d machines", s.session, len(s.inst.Jobs()), len(s.inst.Machines()))
	writeJSON(w, http.StatusOK, s.stateLocked(nil))
}

// Observe handles POST /v1/observe: it advances the episode to the next choice
// point, auto-committing forced assignments on the way.
func (s *Server) Observe(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	choices, err := s.inst.EligibleAssignments()
	if err != nil {
		writeSimError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateLocked(choices))
}

// Assign handles POST /v1/assign.
func (s *Server) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		writeDecodeError(w, "invalid request body", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inst.Assign(req.JobID, req.OpID); err != nil {
		logrus.Warnf("Session %s: assign job %d op %d rejected: %v", s.session, req.JobID, req.OpID, err)
		writeSimError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateLocked(nil))
}

// Done handles GET /v1/done.
func (s *Server) Done(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"done": s.inst.Done()})
}

// Makespan handles GET /v1/makespan.
func (s *Server) Makespan(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int64{"makespan": s.inst.Makespan()})
}

// History handles GET /v1/history.
func (s *Server) History(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.inst.History()
	if records == nil {
		records = []trace.AssignmentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Metrics handles GET /v1/metrics.
func (s *Server) Metrics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.inst.Metrics())
}

func (s *Server) stateLocked(choices []sim.MachineChoice) StateResponse {
	return StateResponse{
		Session:  s.session,
		Clock:    s.inst.Clock(),
		Done:     s.inst.Done(),
		Makespan: s.inst.Makespan(),
		Choices:  choices,
	}
}

// writeSimError maps the simulation error taxonomy onto HTTP status codes.
func writeSimError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sim.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, sim.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, sim.ErrMalformedInput):
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err.Error())
}

func writeDecodeError(w http.ResponseWriter, prefix string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("%s: body exceeds %d bytes", prefix, tooLarge.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, prefix+": "+err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}
