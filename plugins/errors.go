package plugins

import (
	"errors"
	"fmt"
)

// Common error variables for plugin-related operations. These are the error
// kinds of the host: callers branch on them with errors.Is, never on message
// text.
var (
	// ErrPluginNotFound indicates that a requested plugin could not be found
	// in the registry. Lookups never return nil sentinels; a missing unit is
	// always this error.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrCapabilityNotFound indicates that a requested capability has no
	// live provider.
	ErrCapabilityNotFound = errors.New("capability not found")

	// ErrPluginAlreadyExists indicates an attempt to register a plugin with
	// an ID that is already pending registration.
	ErrPluginAlreadyExists = errors.New("plugin already exists")

	// ErrRegistryActivated indicates an operation that is only legal before
	// the one-shot activation pass: registering a unit after activation, or
	// activating a second time.
	ErrRegistryActivated = errors.New("registry already activated")

	// ErrInvalidManifest indicates that a unit manifest failed structural
	// validation (empty identity fields, malformed capability lists) or that
	// a factory produced an instance without a usable identity.
	ErrInvalidManifest = errors.New("invalid plugin manifest")

	// ErrInvalidPluginConfig indicates that a merged configuration is
	// missing a key declared in the unit's default configuration.
	ErrInvalidPluginConfig = errors.New("invalid plugin configuration")

	// ErrCapabilityConflict indicates that two units declare the same
	// provided capability. At most one provider may exist per capability.
	ErrCapabilityConflict = errors.New("capability already provided")

	// ErrCapabilityNotMet indicates that a unit reached instantiation while
	// a capability it consumes still has no provider in the capability table.
	ErrCapabilityNotMet = errors.New("required capability not met")

	// ErrPluginHasDependents indicates an unregistration attempt on a unit
	// whose provided capabilities are still consumed by another unit.
	ErrPluginHasDependents = errors.New("plugin still has dependents")

	// ErrCircularDependency indicates that the dependency resolver could not
	// produce a total order, either because the capability graph contains a
	// cycle or because a declared dependency was never added.
	ErrCircularDependency = errors.New("unresolvable dependency graph")
)

// PluginError represents a detailed error that occurred during a plugin
// operation. It always names the offending plugin and wraps the underlying
// error kind so errors.Is keeps working through it.
type PluginError struct {
	// PluginID identifies the plugin where the error occurred.
	PluginID string

	// Operation describes the action being performed when the error occurred.
	Operation string

	// Message provides a detailed description of the error.
	Message string

	// Err is the underlying error that caused this PluginError.
	Err error
}

// Error implements the error interface for PluginError.
func (e *PluginError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plugin %s: %s failed: %s (%v)", e.PluginID, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("plugin %s: %s failed: %s", e.PluginID, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error chain handling.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new PluginError with the given details.
func NewPluginError(pluginID, operation, message string, err error) *PluginError {
	return &PluginError{
		PluginID:  pluginID,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
