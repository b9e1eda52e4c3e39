package exception

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// ErrNoSubnets returned when a discovery run is requested without any subnets
var ErrNoSubnets = errors.New("no subnets configured to scan")

// ErrCapabilityUnavailable returned when the scanning tool cannot be used at all
var ErrCapabilityUnavailable = errors.New("scanning capability unavailable")

// ErrHostUnreachable returned when a probed host did not answer the probe
var ErrHostUnreachable = errors.New("host did not respond to probe")

// ConfigurationError represents an invalid or empty configuration. It is
// reported before any scanning begins.
type ConfigurationError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	msg := "invalid configuration"

	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}

	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}

	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError returns a new ConfigurationError for field
func NewConfigurationError(field, reason string, cause error) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason, Cause: cause}
}

// PrivilegeError means the scanning capability cannot run with the
// privileges of the current process. Fatal to a whole discovery run.
type PrivilegeError struct {
	Reason string
	Cause  error
}

func (e *PrivilegeError) Error() string {
	msg := "insufficient privileges for network scanning"

	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}

	return msg
}

func (e *PrivilegeError) Unwrap() error {
	return e.Cause
}

// NewPrivilegeError returns a new PrivilegeError
func NewPrivilegeError(reason string, cause error) *PrivilegeError {
	return &PrivilegeError{Reason: reason, Cause: cause}
}

// ProbeError represents a failed probe of a single host
type ProbeError struct {
	IP    string
	Cause error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe failed for %s: %v", e.IP, e.Cause)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// NewProbeError returns a new ProbeError for ip
func NewProbeError(ip string, cause error) *ProbeError {
	return &ProbeError{IP: ip, Cause: cause}
}

// SubnetError represents a failed liveness sweep of an entire subnet
type SubnetError struct {
	Subnet string
	Cause  error
}

func (e *SubnetError) Error() string {
	return fmt.Sprintf("sweep failed for subnet %s: %v", e.Subnet, e.Cause)
}

func (e *SubnetError) Unwrap() error {
	return e.Cause
}

// NewSubnetError returns a new SubnetError for subnet
func NewSubnetError(subnet string, cause error) *SubnetError {
	return &SubnetError{Subnet: subnet, Cause: cause}
}

// RegistryError represents a failure to persist to the server registry
type RegistryError struct {
	Op       string
	Hostname string
	Cause    error
}

func (e *RegistryError) Error() string {
	if e.Hostname != "" {
		return fmt.Sprintf("registry %s failed for %s: %v", e.Op, e.Hostname, e.Cause)
	}

	return fmt.Sprintf("registry %s failed: %v", e.Op, e.Cause)
}

func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// NewRegistryError returns a new RegistryError
func NewRegistryError(op, hostname string, cause error) *RegistryError {
	return &RegistryError{Op: op, Hostname: hostname, Cause: cause}
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsPrivilegeError reports whether err is or wraps a PrivilegeError
func IsPrivilegeError(err error) bool {
	var target *PrivilegeError
	return errors.As(err, &target)
}

// IsRegistryError reports whether err is or wraps a RegistryError
func IsRegistryError(err error) bool {
	var target *RegistryError
	return errors.As(err, &target)
}
