package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every domain endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

func OK(c echo.Context, message string, result interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Result: result})
}

func Fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Response{Success: false, Message: message})
}

func ServerError(c echo.Context) error {
	return Fail(c, http.StatusInternalServerError, "伺服器錯誤")
}
