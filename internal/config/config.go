package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/imdario/mergo"
	"github.com/projectdiscovery/mapcidr"
	"github.com/robgonnella/backupcheck/internal/exception"
)

// MaxSubnetAddresses largest subnet accepted for scanning (a /16)
const MaxSubnetAddresses = 1 << 16

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their json names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		SubnetsToScan:     []string{},
		DirectoriesToScan: []string{},
		Discovery: DiscoveryConfig{
			Workers:             20,
			ProbeTimeoutSeconds: 120,
		},
		Freshness: FreshnessConfig{
			MaxAgeDays: 365,
		},
		DNS: DNSConfig{
			TimeoutSeconds: 2,
		},
	}
}

// WithDefaults fills every unset field of conf from Default
func WithDefaults(conf *Config) (*Config, error) {
	merged := copyConfig(conf)

	if err := mergo.Merge(merged, Default()); err != nil {
		return nil, err
	}

	if merged.SubnetsToScan == nil {
		merged.SubnetsToScan = []string{}
	}

	if merged.DirectoriesToScan == nil {
		merged.DirectoriesToScan = []string{}
	}

	return merged, nil
}

// Validate returns a *exception.ConfigurationError describing the first
// problem found in conf
func Validate(conf *Config) error {
	if err := validate.Struct(conf); err != nil {
		var validationErrs validator.ValidationErrors

		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]

			return exception.NewConfigurationError(
				fieldPath(fe),
				fmt.Sprintf("invalid value %v (%s)", fe.Value(), fe.Tag()),
				nil,
			)
		}

		return exception.NewConfigurationError("", "", err)
	}

	for i, subnet := range conf.SubnetsToScan {
		count, err := mapcidr.AddressCount(subnet)

		if err != nil {
			return exception.NewConfigurationError(
				fmt.Sprintf("subnets_to_scan[%d]", i),
				"invalid subnet",
				err,
			)
		}

		if count > MaxSubnetAddresses {
			return exception.NewConfigurationError(
				fmt.Sprintf("subnets_to_scan[%d]", i),
				fmt.Sprintf("%s has %d addresses, the limit is %d", subnet, count, MaxSubnetAddresses),
				nil,
			)
		}
	}

	return nil
}

// ProbeTimeout returns the per host probe timeout
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Discovery.ProbeTimeoutSeconds) * time.Second
}

// MaxAge returns the oldest a backup can be and still count as fresh
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.Freshness.MaxAgeDays) * 24 * time.Hour
}

// DNSTimeout returns the timeout for a single reverse lookup
func (c *Config) DNSTimeout() time.Duration {
	return time.Duration(c.DNS.TimeoutSeconds) * time.Second
}

// Clean trims every subnet and directory and drops the empty ones
func Clean(conf *Config) *Config {
	cleaned := copyConfig(conf)
	cleaned.SubnetsToScan = cleanList(conf.SubnetsToScan)
	cleaned.DirectoriesToScan = cleanList(conf.DirectoriesToScan)
	return cleaned
}

func fieldPath(fe validator.FieldError) string {
	// drop the leading struct name: Config.subnets_to_scan[0]
	ns := fe.Namespace()

	if idx := strings.Index(ns, "."); idx != -1 {
		return ns[idx+1:]
	}

	return ns
}

func cleanList(items []string) []string {
	cleaned := []string{}

	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}

func copyConfig(c *Config) *Config {
	if c == nil {
		return &Config{}
	}

	copied := *c

	if c.SubnetsToScan != nil {
		copied.SubnetsToScan = append([]string{}, c.SubnetsToScan...)
	}

	if c.DirectoriesToScan != nil {
		copied.DirectoriesToScan = append([]string{}, c.DirectoriesToScan...)
	}

	return &copied
}
