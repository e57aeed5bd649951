package svp

import "fmt"

// ConfigurationError reports an invalid solver configuration or a
// malformed model. It is raised before the first iteration starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// NumericalInstabilityError reports that the estimation engine could
// not reach a stable reconstruction within its iteration cap. The
// controller recovers from it by falling back to the previous table.
type NumericalInstabilityError struct {
	Iterations int
	Residual   float64
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("matrix estimation did not stabilize after %d iterations (residual %g)", e.Iterations, e.Residual)
}
