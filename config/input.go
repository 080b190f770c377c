package config

import "fmt"

// InputConfig locates the library workbook.
type InputConfig struct {
	// Path is an .xlsx file, a directory of <sheet>.csv files or a YAML/JSON
	// document keyed by sheet name.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *InputConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "library.xlsx"
	}
}

// Validate checks mandatory fields.
func (c InputConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
