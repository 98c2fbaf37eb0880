package domain

// MalformedChartError indica que el extractor no pudo recuperar posiciones
// para ningún sistema. Es fatal para el request y no se reintenta.
type MalformedChartError struct {
	Reason string
}

func (e *MalformedChartError) Error() string {
	return "malformed chart payload: " + e.Reason
}

// NewMalformedChartError construye el error con la razón dada.
func NewMalformedChartError(reason string) *MalformedChartError {
	return &MalformedChartError{Reason: reason}
}
