// Package config provides configuration management for blocklint.
//
// Configuration is read from a YAML file (blocklint.yaml by default) with
// environment variable overrides:
//
//	cfg, err := config.LoadConfigOrDefault("blocklint.yaml")
//
// A missing file is not an error; the built-in defaults apply.
//
// # Example
//
//	lint:
//	  enable: true
//	  locale: ru
//	  severity:
//	    blockNameIsRequired: Error
//	    uppercaseNamesIsForbidden: None
//	watch:
//	  debounce: 250ms
//	history:
//	  enabled: true
//	  path: data/blocklint.db
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention BLOCKLINT_SECTION_FIELD:
//
//   - BLOCKLINT_LINT_ENABLE overrides lint.enable
//   - BLOCKLINT_LINT_LOCALE overrides lint.locale
//   - BLOCKLINT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
package config
