package prescription

import "errors"

var (
	// ErrUnknownField is returned when an update names a field that does not
	// exist on the addressed type.
	ErrUnknownField = errors.New("prescription: unknown field")
	// ErrInvalidDiagnosisType rejects tags outside definitive/provisional/differential.
	ErrInvalidDiagnosisType = errors.New("prescription: invalid diagnosis type")
	// ErrInvalidData flags structurally broken decoded payloads.
	ErrInvalidData = errors.New("prescription: invalid data")
)
