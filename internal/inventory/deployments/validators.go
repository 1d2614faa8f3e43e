package deployments

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Letters, digits, underscore, whitespace and . , ' -
var safeTextPattern = regexp.MustCompile(`^[\w\s.,'-]*$`)

var registerOnce sync.Once

// RegisterValidators adds the "safetext" and "notblank" rules to gin's
// validator. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("safetext", isSafeText); err != nil {
			return
		}
		err = v.RegisterValidation("notblank", isNotBlank)
	})
	return err
}

func isSafeText(fl validator.FieldLevel) bool {
	return safeTextPattern.MatchString(fl.Field().String())
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
