package validation

import (
	"strings"
	"testing"
)

func TestValidateNodeRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         NodeRequest
		expectError bool
	}{
		{
			name:        "Valid with generated ID",
			req:         NodeRequest{Name: "spine1"},
			expectError: false,
		},
		{
			name:        "Valid with explicit URI",
			req:         NodeRequest{ID: "urn:nml:node:spine1", Name: "spine1"},
			expectError: false,
		},
		{
			name:        "Missing name - invalid",
			req:         NodeRequest{ID: "urn:nml:node:spine1"},
			expectError: true,
		},
		{
			name:        "ID without scheme - invalid",
			req:         NodeRequest{ID: "spine1", Name: "spine1"},
			expectError: true,
		},
		{
			name:        "Name with spaces - invalid",
			req:         NodeRequest{Name: "spine 1"},
			expectError: true,
		},
		{
			name:        "Name too long - invalid",
			req:         NodeRequest{Name: strings.Repeat("a", 101)},
			expectError: true,
		},
		{
			name:        "Name with dots and dashes - valid",
			req:         NodeRequest{Name: "sw-1.pod2.dc"},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeRequest(&tt.req)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidatePortRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         PortRequest
		expectError bool
	}{
		{
			name: "Valid inbound port",
			req: PortRequest{
				Name:      "eth0_in",
				NodeID:    "urn:nml:node:sw1",
				Direction: "inbound",
			},
			expectError: false,
		},
		{
			name: "Short direction form",
			req: PortRequest{
				Name:      "eth0_out",
				NodeID:    "urn:nml:node:sw1",
				Direction: "out",
			},
			expectError: false,
		},
		{
			name: "Unknown direction - invalid",
			req: PortRequest{
				Name:      "eth0",
				NodeID:    "urn:nml:node:sw1",
				Direction: "sideways",
			},
			expectError: true,
		},
		{
			name: "Missing node - invalid",
			req: PortRequest{
				Name:      "eth0_in",
				Direction: "inbound",
			},
			expectError: true,
		},
		{
			name: "Node ID not a URI - invalid",
			req: PortRequest{
				Name:      "eth0_in",
				NodeID:    "sw1",
				Direction: "inbound",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePortRequest(&tt.req)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateLinkRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         LinkRequest
		expectError bool
	}{
		{
			name: "Valid link",
			req: LinkRequest{
				Source: "urn:nml:port:a_out",
				Sink:   "urn:nml:port:b_in",
			},
			expectError: false,
		},
		{
			name: "Source equals sink - invalid",
			req: LinkRequest{
				Source: "urn:nml:port:a_out",
				Sink:   "urn:nml:port:a_out",
			},
			expectError: true,
		},
		{
			name: "Missing sink - invalid",
			req: LinkRequest{
				Source: "urn:nml:port:a_out",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLinkRequest(&tt.req)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateBiportRequest(t *testing.T) {
	if err := ValidateBiportRequest(&BiportRequest{NodeID: "urn:nml:node:sw1"}); err != nil {
		t.Errorf("Empty name should be accepted (manager auto-names): %v", err)
	}
	if err := ValidateBiportRequest(&BiportRequest{Name: "p1"}); err == nil {
		t.Error("Expected error for missing node ID")
	}
	if err := ValidateBiportRequest(nil); err == nil {
		t.Error("Expected error for nil request")
	}
}

func TestValidateBilinkRequest(t *testing.T) {
	valid := BilinkRequest{
		BiportA: "urn:nml:biport:sw1_p1",
		BiportB: "urn:nml:biport:sw2_p1",
	}
	if err := ValidateBilinkRequest(&valid); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	same := BilinkRequest{
		BiportA: "urn:nml:biport:sw1_p1",
		BiportB: "urn:nml:biport:sw1_p1",
	}
	if err := ValidateBilinkRequest(&same); err == nil {
		t.Error("Expected error for identical biports")
	}
}

func TestValidateBatchSize(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		expectError bool
	}{
		{"Minimum", 1, false},
		{"Maximum", 1000, false},
		{"Zero - invalid", 0, true},
		{"Too large - invalid", 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatchSize(tt.size)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}
