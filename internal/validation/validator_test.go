package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
	validator *Validator
}

func (s *ValidatorTestSuite) SetupTest() {
	s.validator = NewValidator()
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

type budgetInput struct {
	Month string `json:"month" validate:"required,budget_month"`
}

type nameInput struct {
	Name  string `json:"name" validate:"required,not_blank,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (s *ValidatorTestSuite) TestBudgetMonth() {
	testCases := []struct {
		month string
		valid bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"2024-13", false},
		{"2024-00", false},
		{"2024-1", false},
		{"24-01", false},
		{"2024-01-01", false},
		{"", false},
	}

	for _, tc := range testCases {
		s.Run(tc.month, func() {
			err := s.validator.Struct(budgetInput{Month: tc.month})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

func (s *ValidatorTestSuite) TestFieldErrors_UseJSONNames() {
	err := s.validator.Struct(nameInput{Name: "   ", Email: "nope"})

	var validationErrs validator.ValidationErrors
	s.Require().True(errors.As(err, &validationErrs))

	fieldErrors := FieldErrors(validationErrs)
	s.Equal("must not be blank", fieldErrors["name"])
	s.Equal("must be a valid email address", fieldErrors["email"])
}

func (s *ValidatorTestSuite) TestFormatFieldError_Messages() {
	err := s.validator.Struct(nameInput{Name: "toolong"})

	var validationErrs validator.ValidationErrors
	s.Require().True(errors.As(err, &validationErrs))
	s.Equal("must be at most 5 characters long", FormatFieldError(validationErrs[0]))

	err = s.validator.Struct(budgetInput{Month: "May"})
	s.Require().True(errors.As(err, &validationErrs))
	s.Equal("must be in YYYY-MM format", FormatFieldError(validationErrs[0]))
}

func (s *ValidatorTestSuite) TestGetValidator_Singleton() {
	s.Same(GetValidator(), GetValidator())
}
