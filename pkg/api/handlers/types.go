package handlers

import "github.com/bcgsc/mavis-config/pkg/config"

// ValidateResponse is returned for a document that passed validation
type ValidateResponse struct {
	RunID    string          `json:"run_id"`
	Stage    string          `json:"stage"`
	Config   config.Document `json:"config"`
	Bindings []string        `json:"bindings,omitempty"`
}

// ValidationErrorResponse describes why a document failed validation
type ValidationErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  int    `json:"code"`
}

// StageInfo describes one pipeline stage
type StageInfo struct {
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Upstream   []string `json:"upstream"`
	Downstream []string `json:"downstream"`
}

// StagesResponse lists the pipeline stages in definition order
type StagesResponse struct {
	Stages []StageInfo `json:"stages"`
	Total  int         `json:"total"`
}

// DefaultsResponse holds schema defaults
type DefaultsResponse struct {
	Prefix   string          `json:"prefix,omitempty"`
	Defaults config.Document `json:"defaults"`
	Total    int             `json:"total"`
}
