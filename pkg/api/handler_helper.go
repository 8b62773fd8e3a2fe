package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/opennml/gonml/pkg/logging"
	"github.com/opennml/gonml/pkg/nml"
)

// sanitizeError converts an internal error to a user-safe message. Model
// errors carry no secrets and pass through verbatim; anything else is
// logged and replaced with a generic message.
func (s *Server) sanitizeError(err error, operation string) string {
	if err == nil {
		return ""
	}
	if nml.IsNotFound(err) || nml.IsValidation(err) || errors.Is(err, nml.ErrDuplicateID) {
		return err.Error()
	}
	s.logger.Error("request failed",
		logging.Operation(operation),
		logging.Error(err))
	return fmt.Sprintf("%s failed", operation)
}

// errorStatus maps a namespace error to an HTTP status code.
func errorStatus(err error) int {
	switch {
	case nml.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, nml.ErrDuplicateID):
		return http.StatusConflict
	case nml.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requestDecoder decodes and validates request bodies. It provides a
// fluent interface for the common request handling pattern.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// NewRequestDecoder creates a new request decoder for the given request.
func (s *Server) NewRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{r: r, w: w, server: s}
}

// DecodeJSON decodes the request body into the provided struct.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := json.NewDecoder(rd.r.Body).Decode(v); err != nil {
		rd.err = fmt.Errorf("invalid request body: %w", err)
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// Validate runs a request validation function from the validation
// package against the decoded body.
func (rd *requestDecoder) Validate(check func() error) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := check(); err != nil {
		rd.err = err
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// RespondError sends the error response and returns true if there was an
// error. Returns false if no error occurred.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// pathIDExtractor extracts object identifiers from URL paths.
type pathIDExtractor struct {
	w      http.ResponseWriter
	server *Server
	path   string
}

// NewPathExtractor creates a new path extractor. The escaped form of the
// path is kept so identifier escapes survive until ExtractID decodes them
// exactly once.
func (s *Server) NewPathExtractor(w http.ResponseWriter, r *http.Request) *pathIDExtractor {
	return &pathIDExtractor{w: w, server: s, path: r.URL.EscapedPath()}
}

// ExtractID extracts an object identifier from the path after the given
// prefix. Identifiers are URIs, so clients escape them; the extractor
// unescapes. Returns the ID and true on success, or an empty ID and false
// on error (error response sent).
func (pe *pathIDExtractor) ExtractID(prefix string) (nml.ObjectID, bool) {
	if !strings.HasPrefix(pe.path, prefix) {
		pe.server.respondError(pe.w, http.StatusBadRequest, "Invalid path")
		return "", false
	}
	raw := strings.TrimSuffix(pe.path[len(prefix):], "/")
	idStr, err := url.PathUnescape(raw)
	if err != nil || idStr == "" {
		pe.server.respondError(pe.w, http.StatusBadRequest, "Invalid ID format")
		return "", false
	}
	return nml.ObjectID(idStr), true
}

// methodRouter routes requests based on HTTP method. Provides a cleaner
// alternative to switch statements for method routing.
type methodRouter struct {
	w       http.ResponseWriter
	r       *http.Request
	server  *Server
	handled bool
}

// NewMethodRouter creates a new method router.
func (s *Server) NewMethodRouter(w http.ResponseWriter, r *http.Request) *methodRouter {
	return &methodRouter{w: w, r: r, server: s}
}

// Get handles GET requests with the provided handler.
func (mr *methodRouter) Get(handler func()) *methodRouter {
	if !mr.handled && mr.r.Method == http.MethodGet {
		handler()
		mr.handled = true
	}
	return mr
}

// Post handles POST requests with the provided handler.
func (mr *methodRouter) Post(handler func()) *methodRouter {
	if !mr.handled && mr.r.Method == http.MethodPost {
		handler()
		mr.handled = true
	}
	return mr
}

// NotAllowed sends a 405 response if no method matched.
func (mr *methodRouter) NotAllowed() {
	if !mr.handled {
		mr.server.respondError(mr.w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
