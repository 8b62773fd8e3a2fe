// Package validation checks API requests before they reach the
// topology manager.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/opennml/gonml/pkg/nml"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxNameLength     = 100
	MaxEncodingLength = 200
	MaxBatchSize      = 1000
	MinBatchSize      = 1

	// Names follow the conventions used for network element identifiers.
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.:-]*$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("object_id", validObjectID)
	validate.RegisterValidation("direction", validDirection)
}

// validObjectID accepts empty strings (the manager generates an ID) and
// otherwise requires a URI with a scheme.
func validObjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return nml.ObjectID(s).Validate() == nil
}

func validDirection(fl validator.FieldLevel) bool {
	_, err := nml.ParseDirection(fl.Field().String())
	return err == nil
}

// NodeRequest represents a request to register a node
type NodeRequest struct {
	ID   string `json:"id" validate:"omitempty,object_id"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// PortRequest represents a request to register a unidirectional port
type PortRequest struct {
	ID        string `json:"id" validate:"omitempty,object_id"`
	Name      string `json:"name" validate:"required,min=1,max=100"`
	NodeID    string `json:"nodeId" validate:"required,object_id"`
	Direction string `json:"direction" validate:"required,direction"`
	Encoding  string `json:"encoding" validate:"omitempty,max=200"`
}

// LinkRequest represents a request to register a unidirectional link
type LinkRequest struct {
	ID       string `json:"id" validate:"omitempty,object_id"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Source   string `json:"source" validate:"required,object_id"`
	Sink     string `json:"sink" validate:"required,object_id"`
	Encoding string `json:"encoding" validate:"omitempty,max=200"`
}

// BiportRequest represents a request to create a bidirectional port on a
// node; the member ports are derived from the name.
type BiportRequest struct {
	NodeID string `json:"nodeId" validate:"required,object_id"`
	Name   string `json:"name" validate:"omitempty,max=100"`
}

// BilinkRequest represents a request to connect two bidirectional ports
type BilinkRequest struct {
	BiportA string `json:"biportA" validate:"required,object_id"`
	BiportB string `json:"biportB" validate:"required,object_id"`
	Name    string `json:"name" validate:"omitempty,max=100"`
}

// ValidateNodeRequest validates a node registration request
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return validateName("Name", req.Name)
}

// ValidatePortRequest validates a port registration request
func ValidatePortRequest(req *PortRequest) error {
	if req == nil {
		return errors.New("port request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return validateName("Name", req.Name)
}

// ValidateLinkRequest validates a link registration request
func ValidateLinkRequest(req *LinkRequest) error {
	if req == nil {
		return errors.New("link request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.Source == req.Sink {
		return errors.New("Sink: must differ from Source")
	}
	if req.Name != "" {
		return validateName("Name", req.Name)
	}
	return nil
}

// ValidateBiportRequest validates a bidirectional port creation request
func ValidateBiportRequest(req *BiportRequest) error {
	if req == nil {
		return errors.New("biport request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.Name != "" {
		return validateName("Name", req.Name)
	}
	return nil
}

// ValidateBilinkRequest validates a bidirectional link creation request
func ValidateBilinkRequest(req *BilinkRequest) error {
	if req == nil {
		return errors.New("bilink request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.BiportA == req.BiportB {
		return errors.New("BiportB: must differ from BiportA")
	}
	if req.Name != "" {
		return validateName("Name", req.Name)
	}
	return nil
}

// ValidateBatchSize validates the size of a batch request
func ValidateBatchSize(size int) error {
	if size < MinBatchSize {
		return fmt.Errorf("batch size must be at least %d, got %d", MinBatchSize, size)
	}
	if size > MaxBatchSize {
		return fmt.Errorf("batch size must not exceed %d, got %d", MaxBatchSize, size)
	}
	return nil
}

func validateName(field, name string) error {
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s: exceeds maximum length of %d characters", field, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%s: '%s' contains invalid characters (alphanumeric, underscore, dot, colon and dash allowed)", field, name)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "object_id":
			return fmt.Errorf("%s: must be a URI with a scheme", field)
		case "direction":
			return fmt.Errorf("%s: must be 'inbound' or 'outbound'", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
