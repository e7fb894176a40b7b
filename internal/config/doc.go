// Package config loads, normalizes, and validates pptfix configuration.
//
// Configuration comes from a TOML file (default ~/.config/pptfix/config.toml,
// with ./pptfix.toml as a project-local fallback) layered under CLI flag
// overrides applied by the cmd package. Load returns a fully expanded and
// validated Config; callers never see raw file values.
package config
