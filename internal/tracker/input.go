package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fentz26/tasker/internal/models"
)

// ErrInvalidInput wraps every failure to turn user-entered text into a task.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// TaskInput is the raw text a surface collects for a new task.
type TaskInput struct {
	Title      string `validate:"required,max=256"`
	Importance string `validate:"required"`
	DueDate    string `validate:"required"`
}

// ParseTask converts raw input into a task. Importance must be an integer but its
// range is not checked. layout defaults to models.DefaultDateLayout.
func ParseTask(in TaskInput, layout string) (models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Importance = strings.TrimSpace(in.Importance)
	in.DueDate = strings.TrimSpace(in.DueDate)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.Task{}, fmt.Errorf("%w: %s", ErrInvalidInput, describe(verrs[0]))
		}
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	importance, err := strconv.Atoi(in.Importance)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: importance %q is not a number", ErrInvalidInput, in.Importance)
	}

	due, err := models.ParseDate(layout, in.DueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return models.NewTask(in.Title, importance, due), nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if field == "duedate" {
		field = "due date"
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s is longer than %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
