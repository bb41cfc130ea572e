package cartesian

import "fmt"

// WarningCode identifies a non-fatal data problem.
type WarningCode string

const (
	// WarningZeroValue: a log scale was requested for a domain that
	// includes zero or negative values. A linear scale was drawn instead.
	WarningZeroValue WarningCode = "ZERO_VALUE_IN_LOG_DOMAIN"
	// WarningInvalidValues: the data holds NaN or infinite values that were
	// left out of the domains.
	WarningInvalidValues WarningCode = "INVALID_VALUES"
)

// Warning is attached to a layout for the host to show as a dismissible
// notice. Warnings never stop rendering.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Count   int         `json:"count,omitempty"`
}

func (w Warning) String() string { return string(w.Code) + ": " + w.Message }

// ZeroValueWarning reports a rejected log scale.
func ZeroValueWarning() Warning {
	return Warning{
		Code:    WarningZeroValue,
		Message: "log scale needs positive values; showing a linear scale",
	}
}

// InvalidValuesWarning reports n values that cannot be plotted.
func InvalidValuesWarning(n int) Warning {
	return Warning{
		Code:    WarningInvalidValues,
		Message: fmt.Sprintf("%d values are NaN or infinite and were not plotted", n),
		Count:   n,
	}
}
