// =============================================================================
// Receipt Voucher Report - Configuration Module
// =============================================================================
//
// This module loads the main configuration file (config.yaml).
//
// PRECEDENCE:
//   1. Command-line flags (applied by the cmd package)
//   2. Values from the configuration file
//   3. Built-in defaults (applyMainConfigDefaults)
//
// A configuration is always validated after flags are applied, so every
// consumer can rely on a complete and consistent MainConfig.
//
// =============================================================================

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ginjaninja78/tally-receipt-report/internal/voucher"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file read when none is named.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputPath is a ledger export file, or a directory of them.
	// Default: "./Input.xml"
	InputPath string `yaml:"input_path" validate:"required"`

	// InputPattern selects files when InputPath is a directory.
	// Default: "*.xml"
	InputPattern string `yaml:"input_pattern" validate:"required"`

	// VoucherType is the VCHTYPE attribute of the vouchers to report on.
	// Default: "Receipt"
	VoucherType string `yaml:"voucher_type" validate:"required,excludesall='\"[]"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFile is the report workbook. It must end in ".xlsx".
	// Default: "./Processed_file.xlsx"
	OutputFile string `yaml:"output_file" validate:"required,xlsxpath"`

	// SheetName is the worksheet the rows are written to.
	// Default: "Sample"
	SheetName string `yaml:"sheet_name" validate:"required,max=31,excludesall=:\\/?*[]"`

	// FailureLogDir receives a failure log when any voucher or input fails.
	// Empty disables the log file; failures are still logged.
	FailureLogDir string `yaml:"failure_log_dir"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// ParentAmountPolicy selects the Parent row amount.
	// Valid values: "declared", "reconciled"
	// Default: "declared"
	ParentAmountPolicy string `yaml:"parent_amount_policy"`

	// MaxConcurrency is the maximum number of vouchers flattened at once.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" validate:"min=1"`

	// StopOnError aborts the run at the first voucher failure instead of
	// skipping the voucher.
	// Default: false
	StopOnError bool `yaml:"stop_on_error"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the log encoding.
	// Valid values: "console", "json"
	// Default: "console"
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`

	// LogFile is an additional log destination. Logs always go to stderr.
	LogFile string `yaml:"log_file"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads and validates the main configuration file.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error wrapping fs.ErrNotExist when the file is missing, or a parse
//     or validation error.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML. Unknown keys are rejected to catch typos.
	var config MainConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyMainConfigDefaults(&config)

	// Validate the configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func applyMainConfigDefaults(config *MainConfig) {
	if config.InputPath == "" {
		config.InputPath = "./Input.xml"
	}
	if config.InputPattern == "" {
		config.InputPattern = "*.xml"
	}
	if config.VoucherType == "" {
		config.VoucherType = "Receipt"
	}
	if config.OutputFile == "" {
		config.OutputFile = "./Processed_file.xlsx"
	}
	if config.SheetName == "" {
		config.SheetName = "Sample"
	}
	if config.ParentAmountPolicy == "" {
		config.ParentAmountPolicy = string(voucher.PolicyDeclared)
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}

	config.LogLevel = strings.ToLower(config.LogLevel)
	config.LogFormat = strings.ToLower(config.LogFormat)
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks a configuration after defaults and flag overrides.
func (c *MainConfig) Validate() error {
	if _, err := voucher.ParsePolicy(c.ParentAmountPolicy); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s %q fails the %q rule", fe.Field(), fmt.Sprint(fe.Value()), ruleName(fe))
		}
		return err
	}

	if strings.TrimSpace(c.VoucherType) == "" {
		return fmt.Errorf("voucher_type must not be blank")
	}

	return nil
}

// validate holds the struct rules of MainConfig. Field names in errors are
// the YAML keys.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// xlsxpath requires the .xlsx extension the report writer needs.
	if err := v.RegisterValidation("xlsxpath", func(fl validator.FieldLevel) bool {
		return strings.EqualFold(filepath.Ext(fl.Field().String()), ".xlsx")
	}); err != nil {
		panic(err)
	}

	return v
}

func ruleName(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// Policy returns the parsed parent amount policy. It must only be called on
// a validated configuration.
func (c *MainConfig) Policy() voucher.ParentAmountPolicy {
	policy, _ := voucher.ParsePolicy(c.ParentAmountPolicy)
	return policy
}
