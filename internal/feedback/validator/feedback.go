package validator

import (
	"errors"
	"strings"

	feedbackerrors "gymbook/internal/feedback/errors"
	"gymbook/internal/feedback/service"

	"github.com/go-playground/validator/v10"
)

// FeedbackValidator gates the public feedback intake: a trimmed name of at
// least two characters and a plausible email address. Message and
// attachments are optional; attachment limits are enforced by the service.
type FeedbackValidator struct {
	validate *validator.Validate
}

func NewFeedbackValidator() *FeedbackValidator {
	return &FeedbackValidator{validate: validator.New()}
}

func (v *FeedbackValidator) Validate(req *service.FeedbackRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return feedbackerrors.ErrInvalidName
	}
	if err := v.validate.Var(req.Email, "required,email"); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return feedbackerrors.ErrInvalidEmail
		}
		return err
	}
	return nil
}
