// Package application provides test doubles for the command application
// interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/pkg/gateway"
	"github.com/agentstation/retroshelf/pkg/store"
	"github.com/agentstation/retroshelf/pkg/store/memory"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method falls back to a shared in-memory
// catalog created on first use.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := items.NewCommand(mock)
//	// ... test command
type Mock struct {
	StoreFunc        func() (store.Store, error)
	GatewayFunc      func() (*gateway.Gateway, error)
	ControllerFunc   func() (*controller.Controller, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string

	mem *memory.Store
	gw  *gateway.Gateway
	ctl *controller.Controller
}

var _ application.Application = (*Mock)(nil)

// Memory returns the backing memory store used by the default functions.
func (m *Mock) Memory() *memory.Store {
	if m.mem == nil {
		m.mem = memory.New()
	}
	return m.mem
}

// Store returns a store using the mock function or the memory store.
func (m *Mock) Store() (store.Store, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc()
	}
	return m.Memory(), nil
}

// Gateway returns a gateway using the mock function or one over Store.
func (m *Mock) Gateway() (*gateway.Gateway, error) {
	if m.GatewayFunc != nil {
		return m.GatewayFunc()
	}
	if m.gw == nil {
		s, err := m.Store()
		if err != nil {
			return nil, err
		}
		m.gw = gateway.New(s, gateway.WithLogger(m.Logger()))
	}
	return m.gw, nil
}

// Controller returns a controller using the mock function or one over Gateway.
func (m *Mock) Controller() (*controller.Controller, error) {
	if m.ControllerFunc != nil {
		return m.ControllerFunc()
	}
	if m.ctl == nil {
		gw, err := m.Gateway()
		if err != nil {
			return nil, err
		}
		m.ctl = controller.New(gw, controller.WithLogger(m.Logger()))
	}
	return m.ctl, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
