package utils

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// HandleSubroutinePanic recovers a panic of a worker subroutine, logs it and
// stores it as error in errPtr (if not nil).
func HandleSubroutinePanic(identifier string, errPtr *error) {
	if err := recover(); err != nil {
		panicErr, ok := err.(error)
		if !ok {
			panicErr = fmt.Errorf("%v", err)
		}
		logrus.WithError(panicErr).Errorf("uncaught panic in %v subroutine: %v, stack: %v", identifier, err, string(debug.Stack()))
		if errPtr != nil {
			*errPtr = fmt.Errorf("panic in %v: %w", identifier, panicErr)
		}
	}
}
