package api

import (
	"time"

	"github.com/opennml/gonml/pkg/constraints"
	"github.com/opennml/gonml/pkg/validation"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// InfoResponse describes the running server.
type InfoResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Schema  string `json:"schema"`
	Uptime  string `json:"uptime"`
}

// ListResponse wraps a listing with its length.
type ListResponse struct {
	Count int `json:"count"`
	Items any `json:"items"`
}

// ViolationResponse is the wire form of a constraint violation.
type ViolationResponse struct {
	Type       string         `json:"type"`
	Severity   string         `json:"severity"`
	ObjectID   string         `json:"objectId,omitempty"`
	Constraint string         `json:"constraint"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

// ValidateResponse reports the outcome of a namespace validation run.
type ValidateResponse struct {
	Valid      bool                `json:"valid"`
	CheckedAt  time.Time           `json:"checkedAt"`
	Violations []ViolationResponse `json:"violations"`
	Time       string              `json:"time"`
}

// BatchNodeRequest registers several nodes in one call.
type BatchNodeRequest struct {
	Nodes []validation.NodeRequest `json:"nodes"`
}

// BatchLinkRequest registers several links in one call.
type BatchLinkRequest struct {
	Links []validation.LinkRequest `json:"links"`
}

// BatchResponse reports how much of a batch was accepted.
type BatchResponse struct {
	Created  int    `json:"created"`
	Rejected int    `json:"rejected"`
	Time     string `json:"time"`
	Items    any    `json:"items"`
}

func violationResponses(violations []constraints.Violation) []ViolationResponse {
	out := make([]ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, ViolationResponse{
			Type:       v.Type.String(),
			Severity:   v.Severity.String(),
			ObjectID:   v.ObjectID.String(),
			Constraint: v.Constraint,
			Message:    v.Message,
			Details:    v.Details,
		})
	}
	return out
}
