package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/go-playground/validator/v10"
)

// requestValidator plugs validator/v10 into echo.Context.Validate.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags of i. Failures wrap common.ErrorValidation.
func (r *requestValidator) Validate(i any) error {
	if err := r.v.Struct(i); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
