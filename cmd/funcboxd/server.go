package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	funcbox "github.com/funcbox/funcbox"
)

// maxSourceBytes bounds a submitted function body.
const maxSourceBytes = 1 << 20

type server struct {
	svc    *funcbox.Service
	logger *slog.Logger
	mux    *http.ServeMux
}

func newServer(svc *funcbox.Service, logger *slog.Logger) *server {
	s := &server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("POST /fn/{name}", s.handleSubmit)
	s.mux.HandleFunc("GET /fn/{name}", s.handleInvoke)
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "Hello funcbox!")
}

func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSourceBytes+1))
	if err != nil {
		s.internalError(w, "reading submit body", err)
		return
	}
	if len(body) > maxSourceBytes {
		http.Error(w, "function body too large", http.StatusRequestEntityTooLarge)
		return
	}
	if err := s.svc.Submit(name, string(body)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	res, err := s.svc.Invoke(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, res.Value)
}

// writeError maps service errors onto client responses. Invalid input is
// reported verbatim; script failures carry the script's own message;
// everything else is opaque to the client and logged in full.
func (s *server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, funcbox.ErrInvalidFunctionName),
		errors.Is(err, funcbox.ErrInvalidSource),
		errors.Is(err, funcbox.ErrUnknownFunction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		var scriptErr *funcbox.ScriptError
		if errors.As(err, &scriptErr) {
			http.Error(w, "error evaluating function: "+scriptErr.Message, http.StatusInternalServerError)
			return
		}
		s.internalError(w, "handling request", err)
	}
}

func (s *server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
