// Package api exposes the buzzer's two access surfaces over HTTP: the
// attribute property at /buzz and the exclusive session under /session.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"buzzerd/core"
)

// Server maps HTTP requests onto the device's front ends. At most one
// session token is live at a time, mirroring the device's exclusivity.
type Server struct {
	dev *core.Device

	mu      sync.Mutex
	token   string
	session *core.Session
}

// NewServer creates a Server for an attached device.
func NewServer(dev *core.Device) *Server {
	return &Server{dev: dev}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/buzz", s.handleShow).Methods("GET")
	r.HandleFunc("/buzz", s.handleStore).Methods("POST")
	r.HandleFunc("/session", s.handleOpen).Methods("POST")
	r.HandleFunc("/session/{token}", s.handleWrite).Methods("PUT")
	r.HandleFunc("/session/{token}", s.handleRelease).Methods("DELETE")

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// statusFor translates controller errors into HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, core.ErrParse), errors.Is(err, core.ErrFault):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrDetached):
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, s.dev.Show())
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64))
	if err != nil {
		http.Error(w, "cannot read request body", http.StatusBadRequest)
		return
	}

	n, err := s.dev.Store(string(body))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, strconv.Itoa(n)+"\n")
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.dev.Open()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	s.token = uuid.NewString()
	s.session = sess

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"token": s.token})
}

// lookup returns the live session for a token, or nil.
func (s *Server) lookup(token string) *core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.token {
		return nil
	}
	return s.session
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(mux.Vars(r)["token"])
	if sess == nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 64))
	if err != nil {
		http.Error(w, "cannot read request body", http.StatusBadRequest)
		return
	}
	// The raw device takes a state byte; over HTTP it travels as
	// decimal text.
	val, err := strconv.ParseUint(string(body), 10, 8)
	if err != nil {
		http.Error(w, "state must be a decimal byte", http.StatusBadRequest)
		return
	}

	if err := sess.Write([]byte{byte(val)}); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || token != s.token {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	s.session.Close()
	s.session = nil
	s.token = ""
	w.WriteHeader(http.StatusNoContent)
}
