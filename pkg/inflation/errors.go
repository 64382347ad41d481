package inflation

import "fmt"

// Kind classifies why an input was rejected.
type Kind int

const (
	// MissingField means a required input was absent or empty.
	MissingField Kind = iota + 1
	// NonPositiveAmount means the amount was zero or negative.
	NonPositiveAmount
	// InvalidDateRange means the end date was not strictly after the start date.
	InvalidDateRange
	// MalformedField means a text input was present but could not be parsed.
	// Only ParseInput produces it. Parsing is strict: "12abc" is not read as
	// 12 and "ten" is not treated as a missing field, both are malformed.
	MalformedField
	// OutOfRange means the amount, or the amount projected over the period,
	// cannot be represented as a finite number.
	OutOfRange
)

// String returns the stable identifier used in API responses.
func (k Kind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case NonPositiveAmount:
		return "non_positive_amount"
	case InvalidDateRange:
		return "invalid_date_range"
	case MalformedField:
		return "malformed_field"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// Field names reported by ValidationError.
const (
	FieldAmount    = "amount"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

// ValidationError reports a rejected input. Every ValidationError is
// recoverable by asking the user for corrected input.
type ValidationError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Kind {
	case MissingField:
		msg = fmt.Sprintf("%s is required", e.Field)
	case NonPositiveAmount:
		msg = "amount must be greater than zero"
	case InvalidDateRange:
		msg = "end date must be after the start date"
	case MalformedField:
		msg = fmt.Sprintf("%s is malformed", e.Field)
	case OutOfRange:
		msg = "amount is too large to estimate"
	default:
		msg = "invalid input"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ValidationError of the same Kind, so
// callers can match with errors.Is(err, &ValidationError{Kind: NonPositiveAmount}).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

// Message returns the short Spanish sentence shown to users of the web form.
func (e *ValidationError) Message() string {
	switch e.Kind {
	case MissingField:
		return "Por favor, completá todos los campos"
	case NonPositiveAmount:
		return "El monto debe ser mayor a cero"
	case InvalidDateRange:
		return "La fecha final debe ser posterior a la inicial"
	case MalformedField:
		return fmt.Sprintf("El campo %s no tiene un formato válido", e.Field)
	case OutOfRange:
		return "El monto es demasiado grande para calcular"
	default:
		return "Datos inválidos"
	}
}
