// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/iwvelando/inflation-estimator/pkg/format"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(outputFormat string) error {
	switch outputFormat {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, outputFormat)
}

// ValidateLocale checks that tag matches one of the supported display locales.
func ValidateLocale(tag string) error {
	if _, ok := format.LookupLocale(tag); !ok {
		return fmt.Errorf("unsupported locale %q, expected es-AR or en-US", tag)
	}
	return nil
}
