package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/reminder"

	"github.com/go-playground/validator/v10"
)

var requestValidator = newRequestValidator()

// newRequestValidator reports fields by their JSON names so errors match the request body.
func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ReminderRequest is the body of the send-reminder endpoints. TenantID defaults to the configured tenant.
type ReminderRequest struct {
	TenantID *int64 `json:"tenant_id"`
	Year     int    `json:"year" validate:"required"`
	Month    int    `json:"month" validate:"required,min=1,max=12"`
	Phase    int    `json:"phase,omitempty" validate:"omitempty,min=1,max=4"`
}

func (r ReminderRequest) validate(requirePhase bool) error {
	errs := fieldErrors(requestValidator.Struct(r))
	if !requirePhase {
		errs = withoutField(errs, "Phase")
	}

	missing := missingFields(errs)
	if requirePhase && r.Phase == 0 {
		missing = append(missing, "phase")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required parameters: %s", strings.Join(missing, ", "))
	}
	return invalidField(errs)
}

// ApprovalRequest is sent by the shift scheduler when a plan is approved.
type ApprovalRequest struct {
	TenantID int64 `json:"tenant_id" validate:"required"`
	StoreID  int64 `json:"store_id,omitempty"`
	PlanID   int64 `json:"plan_id,omitempty"`
	Year     int   `json:"year" validate:"required"`
	Month    int   `json:"month" validate:"required,min=1,max=12"`
}

func (r ApprovalRequest) validate() error {
	errs := fieldErrors(requestValidator.Struct(r))
	if len(missingFields(errs)) > 0 {
		return errors.New("missing required parameters: tenant_id, year, month")
	}
	return invalidField(errs)
}

type TestMessageRequest struct {
	TenantID int64  `json:"tenant_id" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

func (r TestMessageRequest) validate() error {
	if len(missingFields(fieldErrors(requestValidator.Struct(r)))) > 0 {
		return errors.New("missing required parameters: tenant_id, message")
	}
	return nil
}

func fieldErrors(err error) validator.ValidationErrors {
	var errs validator.ValidationErrors
	errors.As(err, &errs)
	return errs
}

func withoutField(errs validator.ValidationErrors, structField string) validator.ValidationErrors {
	kept := errs[:0:0]
	for _, fe := range errs {
		if fe.StructField() != structField {
			kept = append(kept, fe)
		}
	}
	return kept
}

func missingFields(errs validator.ValidationErrors) []string {
	var missing []string
	for _, fe := range errs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}

// invalidField describes the first range violation, nil when there is none.
func invalidField(errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	fe := errs[0]
	switch fe.Field() {
	case "month":
		return fmt.Errorf("invalid month: %v. Valid months are 1-12", fe.Value())
	case "phase":
		return fmt.Errorf("invalid phase number: %v. Valid phases are %d-%d", fe.Value(), reminder.MinPhase, reminder.MaxPhase)
	default:
		return fmt.Errorf("invalid %s: %v", fe.Field(), fe.Value())
	}
}

// ReminderResponse is a reminder Result with a human readable message.
type ReminderResponse struct {
	*reminder.Result
	Message string `json:"message"`
}

func newReminderResponse(result *reminder.Result) ReminderResponse {
	message := "Reminder sent to group"
	if !result.Notified {
		message = "No reminder sent"
		if result.Reason != "" {
			message += ": " + result.Reason
		}
	}
	return ReminderResponse{Result: result, Message: message}
}

type PersonalResponse struct {
	Success bool `json:"success"`
	*app.PersonalResult
}

type StatusResponse struct {
	Success bool `json:"success"`
	*app.StatusReport
}

type TestMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	GroupID string `json:"groupId"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
