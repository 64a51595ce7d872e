package user

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldDepartment = "department"
	FieldPassword   = "password"
	FieldIsActive   = "is_active"
)

const (
	ruleRequired = "required"
	ruleFilled   = "filled"
	ruleString   = "string"
	ruleBoolean  = "boolean"
	ruleEmail    = "email"
	ruleMin      = "min"
	ruleMax      = "max"
	ruleDigits   = "digits"
	ruleUnique   = "unique"
)

var messages = map[string]map[string]string{
	FieldName: {
		ruleRequired: "The name field is required.",
		ruleFilled:   "The name field must not be empty.",
		ruleString:   "The name must be a string.",
		ruleMax:      "The name may not be greater than 255 characters.",
	},
	FieldEmail: {
		ruleRequired: "The email field is required.",
		ruleFilled:   "The email field must not be empty.",
		ruleString:   "The email must be a string.",
		ruleEmail:    "The email must be a valid email address.",
		ruleUnique:   "Email already in use.",
	},
	FieldPhone: {
		ruleRequired: "The phone field is required.",
		ruleFilled:   "The phone field must not be empty.",
		ruleString:   "The phone must be a string.",
		ruleMin:      "The phone number must be at least 10 characters.",
		ruleDigits:   "The phone number may only contain digits.",
	},
	FieldDepartment: {
		ruleRequired: "The department field is required.",
		ruleFilled:   "The department field must not be empty.",
		ruleString:   "The department must be a string.",
		ruleMax:      "The department may not be greater than 255 characters.",
	},
	FieldPassword: {
		ruleRequired: "The password field is required.",
		ruleFilled:   "The password field must not be empty.",
		ruleString:   "The password must be a string.",
		ruleMin:      "The password must be at least 8 characters.",
	},
	FieldIsActive: {
		ruleBoolean: "The is_active field must be true or false.",
	},
}

var digitsRegexp = regexp.MustCompile(`^[0-9]+$`)

type rule struct {
	name string
	tag  string // validator tag
}

type fieldRules struct {
	field string
	value func(Input) *string
	rules []rule
}

var stringRules = []fieldRules{
	{
		field: FieldName,
		value: func(in Input) *string { return in.Name },
		rules: []rule{{ruleMax, "max=255"}},
	},
	{
		field: FieldEmail,
		value: func(in Input) *string { return in.Email },
		rules: []rule{{ruleEmail, "email"}},
	},
	{
		field: FieldPhone,
		value: func(in Input) *string { return in.Phone },
		rules: []rule{{ruleMin, "min=10"}, {ruleDigits, "digits"}},
	},
	{
		field: FieldDepartment,
		value: func(in Input) *string { return in.Department },
		rules: []rule{{ruleMax, "max=255"}},
	},
	{
		field: FieldPassword,
		value: func(in Input) *string { return in.Password },
		rules: []rule{{ruleMin, "min=8"}},
	},
}

// EmailChecker answers the email uniqueness lookup. exceptID is ignored when zero.
type EmailChecker interface {
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
}

// Validator runs the create and update rule sets against an Input.
type Validator struct {
	validate *validator.Validate
	emails   EmailChecker
}

func NewValidator(emails EmailChecker) *Validator {
	validate := validator.New()
	// only fails on a duplicate registration
	_ = validate.RegisterValidation(ruleDigits, func(fl validator.FieldLevel) bool {
		return digitsRegexp.MatchString(fl.Field().String())
	})

	return &Validator{
		validate: validate,
		emails:   emails,
	}
}

// ValidateCreate requires every field except is_active.
func (v *Validator) ValidateCreate(ctx context.Context, in Input) error {
	return v.run(ctx, in, true, 0)
}

// ValidateUpdate checks only the fields present in the input. The record's own
// id is excluded from the email uniqueness lookup.
func (v *Validator) ValidateUpdate(ctx context.Context, id int64, in Input) error {
	return v.run(ctx, in, false, id)
}

func (v *Validator) run(ctx context.Context, in Input, create bool, exceptID int64) error {
	verr := &ValidationError{}
	for field, msgs := range in.invalid.Fields {
		for _, msg := range msgs {
			verr.add(field, msg)
		}
	}

	for _, fr := range stringRules {
		if verr.has(fr.field) {
			continue
		}

		value := fr.value(in)
		if value == nil {
			if create {
				verr.add(fr.field, messages[fr.field][ruleRequired])
			}
			continue
		}

		if *value == "" {
			if create {
				verr.add(fr.field, messages[fr.field][ruleRequired])
			} else {
				verr.add(fr.field, messages[fr.field][ruleFilled])
			}
			continue
		}

		for _, r := range fr.rules {
			if err := v.validate.Var(*value, r.tag); err != nil {
				verr.add(fr.field, messages[fr.field][r.name])
			}
		}
	}

	if in.Email != nil && !verr.has(FieldEmail) {
		taken, err := v.emails.EmailTaken(ctx, *in.Email, exceptID)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			verr.add(FieldEmail, messages[FieldEmail][ruleUnique])
		}
	}

	if verr.empty() {
		return nil
	}

	return verr
}
