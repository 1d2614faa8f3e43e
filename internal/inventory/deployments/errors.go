package deployments

import (
	"errors"
	"strings"
)

var ErrDeploymentNotFound = errors.New("deployment not found")

// ValidationError collects every rule a deployment request breaks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid deployment: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
