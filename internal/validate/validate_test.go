package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Account string `validate:"required,min=4,max=20"`
	Email   string `validate:"required,email"`
}

var messages = map[string]string{
	"Account.required": "帳號不能為空",
	"Account.min":      "帳號必須 4 個字以上",
	"Email.email":      "信箱格式不正確",
}

func TestStructValid(t *testing.T) {
	err := Struct(&sample{Account: "tester", Email: "tester@test.com"}, messages)
	require.NoError(t, err)
}

func TestStructFirstFailingMessage(t *testing.T) {
	err := Struct(&sample{Account: "", Email: "bad"}, messages)
	require.EqualError(t, err, "帳號不能為空")

	err = Struct(&sample{Account: "abc", Email: "bad"}, messages)
	require.EqualError(t, err, "帳號必須 4 個字以上")

	err = Struct(&sample{Account: "tester", Email: "bad"}, messages)
	require.EqualError(t, err, "信箱格式不正確")
}

func TestStructFallbackMessage(t *testing.T) {
	err := Struct(&sample{Account: "tester", Email: ""}, map[string]string{})
	require.EqualError(t, err, "Email 格式不正確")
}
