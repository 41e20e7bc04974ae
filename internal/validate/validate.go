package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the validate tags of s and returns the message of the
// first failing field. messages maps "Field.tag" to the user-facing
// text surfaced in the response envelope.
func Struct(s interface{}, messages map[string]string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return errors.New(msg)
		}
		return fmt.Errorf("%s 格式不正確", fe.Field())
	}
	return err
}
