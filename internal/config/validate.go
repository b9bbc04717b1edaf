package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"
)

const (
	JournalSQLite   = "sqlite"
	JournalPostgres = "pgsql"
	JournalNone     = "none"
)

var journalTypes = []string{JournalSQLite, JournalPostgres, JournalNone}

type ValidationRule struct {
	Rule func(v *validator.Validate)
}

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func journalTypeValidator(fl validator.FieldLevel) bool {
	return funk.ContainsString(journalTypes, fl.Field().String())
}

// device42Validator requires the Device42 endpoint and credentials unless the
// run only records what it would upload.
func device42Validator(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.Migration != nil && cfg.Migration.DryRun {
		return
	}
	if cfg.Device42 == nil {
		sl.ReportError(cfg.Device42, "Device42", "Device42", "required", "")
		return
	}
	if cfg.Device42.URL == "" {
		sl.ReportError(cfg.Device42.URL, "URL", "URL", "required", "")
	}
	if cfg.Device42.User == "" {
		sl.ReportError(cfg.Device42.User, "User", "User", "required", "")
	}
	if cfg.Device42.Password == "" {
		sl.ReportError(cfg.Device42.Password, "Password", "Password", "required", "")
	}
}

func NewConfigValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("journal_type", journalTypeValidator),
		},
		{
			Rule: func(v *validator.Validate) {
				v.RegisterStructValidation(device42Validator, Config{})
			},
		},
	}
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	v := validator.New()
	for _, r := range NewConfigValidationRules() {
		r.Rule(v)
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
