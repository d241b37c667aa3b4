package reporter

import (
	"bytes"
	"encoding/json"
	"os"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// PasswordEnvVar, if set, overrides the password in the configuration file.
const PasswordEnvVar = "TESTRAIL_PASSWORD"

// RunConfig contains the reporter options for one run. It is not modified after the
// Controller has been created.
//
// Required values use optional types so that a missing value can be told apart from a
// zero value: a configured projectId of 0 is passed through to TestRail as-is.
type RunConfig struct {
	Domain        ldvalue.OptionalString `json:"domain"`
	Username      ldvalue.OptionalString `json:"username"`
	Password      ldvalue.OptionalString `json:"password"`
	ProjectID     ldvalue.OptionalInt    `json:"projectId"`
	SuiteID       ldvalue.OptionalInt    `json:"suiteId"`
	CreateTestRun *bool                  `json:"createTestRun"`

	// RunName is the first part of the generated run name; see RunName.
	RunName string `json:"runName,omitempty"`
	// RunID is the existing run that receives results when CreateTestRun is false.
	RunID        ldvalue.OptionalInt `json:"runId"`
	SlackURL     string              `json:"slackUrl,omitempty"`
	DashboardURL string              `json:"dashboardUrl,omitempty"`
	EndIcon      string              `json:"endIcon,omitempty"`
	FailureOnly  bool                `json:"failureOnly,omitempty"`
}

// Validate returns a *ConfigurationError naming the first required value that is missing.
func (c RunConfig) Validate() error {
	required := []struct {
		name    string
		defined bool
	}{
		{"domain", c.Domain.IsDefined()},
		{"username", c.Username.IsDefined()},
		{"password", c.Password.IsDefined()},
		{"projectId", c.ProjectID.IsDefined()},
		{"suiteId", c.SuiteID.IsDefined()},
		{"createTestRun", c.CreateTestRun != nil},
	}
	for _, r := range required {
		if !r.defined {
			return &ConfigurationError{Field: r.name}
		}
	}
	return nil
}

// ShouldCreateTestRun reports whether a new run is created in TestRail at the start of the run.
func (c RunConfig) ShouldCreateTestRun() bool {
	return c.CreateTestRun != nil && *c.CreateTestRun
}

// ParseConfig decodes reporter options from JSON. The options may be either the top-level
// object or nested under a "reporterOptions" property, so an existing runner configuration
// file can be used directly. The result is validated.
func ParseConfig(data []byte) (RunConfig, error) {
	var wrapper struct {
		ReporterOptions json.RawMessage `json:"reporterOptions"`
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return RunConfig{}, &ConfigurationError{}
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return RunConfig{}, &ConfigurationError{Err: err}
	}
	if len(wrapper.ReporterOptions) > 0 {
		trimmed = wrapper.ReporterOptions
	}
	var config RunConfig
	if err := json.Unmarshal(trimmed, &config); err != nil {
		return RunConfig{}, &ConfigurationError{Err: err}
	}
	if password := os.Getenv(PasswordEnvVar); password != "" {
		config.Password = ldvalue.NewOptionalString(password)
	}
	if err := config.Validate(); err != nil {
		return RunConfig{}, err
	}
	return config, nil
}

// LoadConfig reads and parses a reporter options file.
func LoadConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, &ConfigurationError{Err: err}
	}
	return ParseConfig(data)
}
