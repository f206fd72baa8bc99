package validation

import (
	"sync"

	"github.com/bcgsc/mavis-config/pkg/config"
	"github.com/bcgsc/mavis-config/pkg/stage"
)

// MockValidator is a mock implementation of Validator for testing
type MockValidator struct {
	mu sync.Mutex

	// Control behavior
	ValidateFunc   func(doc config.Document, st stage.Stage) (config.Document, error)
	DefaultsValues config.Defaults

	// Track calls for assertions
	ValidateCalls []ValidateCall
}

// ValidateCall records a Validate call
type ValidateCall struct {
	Document config.Document
	Stage    stage.Stage
}

// NewMockValidator creates a new mock validator
func NewMockValidator() *MockValidator {
	return &MockValidator{
		ValidateCalls: make([]ValidateCall, 0),
	}
}

// Validate implements Validator. Without ValidateFunc the document is
// returned unchanged.
func (m *MockValidator) Validate(doc config.Document, st stage.Stage) (config.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ValidateCalls = append(m.ValidateCalls, ValidateCall{
		Document: doc,
		Stage:    st,
	})

	if m.ValidateFunc != nil {
		return m.ValidateFunc(doc, st)
	}

	return doc, nil
}

// Defaults implements Validator
func (m *MockValidator) Defaults() config.Defaults {
	return m.DefaultsValues
}

// Reset clears all recorded calls
func (m *MockValidator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ValidateCalls = make([]ValidateCall, 0)
}

// GetValidateCallCount returns the number of Validate calls
func (m *MockValidator) GetValidateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.ValidateCalls)
}

// Ensure mock implements the interface
var _ Validator = (*MockValidator)(nil)
