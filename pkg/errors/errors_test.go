package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorText(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidInput, "bad width %d", -1), "INVALID_INPUT: bad width -1"},
		{"wrapped", Wrap(ErrCodeNetwork, cause, "ping redis"), "NETWORK_ERROR: ping redis: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(ErrCodeNetwork, cause, "outer")
	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("Wrap should keep the cause in the chain")
	}
}

func TestGetCode(t *testing.T) {
	row := &RowError{Source: "a.csv", Row: 3, Err: errors.New("NaN")}
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"plain", errors.New("plain"), ""},
		{"coded", New(ErrCodeInvalidChartType, "pie"), ErrCodeInvalidChartType},
		{"outermost wins", Wrap(ErrCodeInvalidChartFile, New(ErrCodeInvalidChartType, "pie"), "layer 1"), ErrCodeInvalidChartFile},
		{"through fmt", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound},
		{"row error", row, ErrCodeInvalidData},
		{"row error wrapped", fmt.Errorf("read: %w", row), ErrCodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(%q) = false", tt.want)
			}
		})
	}
	if Is(nil, "") {
		t.Error("nil error should match no code")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(Wrap(ErrCodeInvalidData, errors.New("detail"), "bad data")); got != "bad data" {
		t.Errorf("UserMessage = %q, want the message without code or cause", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidViewport, http.StatusBadRequest},
		{ErrCodeInvalidData, http.StatusBadRequest},
		{ErrCodeSheetNotFound, http.StatusNotFound},
		{ErrCodeUnsupported, http.StatusNotImplemented},
		{ErrCodeNetwork, http.StatusBadGateway},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%q.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestRowError(t *testing.T) {
	cause := errors.New("not a number")
	tests := []struct {
		name string
		err  *RowError
		want string
	}{
		{"with column", &RowError{Source: "sales.csv", Row: 4, Column: "Revenue", Err: cause}, `sales.csv: row 4, column "Revenue": not a number`},
		{"without column", &RowError{Source: "Sheet1", Row: 2, Err: cause}, "Sheet1: row 2: not a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("RowError should unwrap to its cause")
			}
		})
	}
}
