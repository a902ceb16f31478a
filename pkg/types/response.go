package types

import "github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"

// SuccessEnvelope wraps single-item API responses.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ListEnvelope wraps paginated list responses.
type ListEnvelope struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// ErrorEnvelope wraps failed responses; Error is a human-readable message.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
