package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	httpError "customer-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

type Result struct {
	Data  interface{}
	Error error
}

type BaseResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    int         `json:"code"`
}

// Response writes a success envelope.
func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(BaseResponse{
		Success: true,
		Message: message,
		Data:    data,
		Code:    code,
	})
}

// ResponseError writes a failure envelope. Unknown errors become 500.
func ResponseError(err error, ctx *fiber.Ctx) error {
	var commonErr *httpError.CommonError
	if !errors.As(err, &commonErr) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			commonErr = &httpError.CommonError{Code: fiberErr.Code, Kind: httpError.KindBadRequest, Message: fiberErr.Message}
		} else {
			commonErr = httpError.NewInternalServerError()
		}
	}
	return ctx.Status(commonErr.Code).JSON(BaseResponse{
		Success: false,
		Message: commonErr.Message,
		Kind:    commonErr.Kind,
		Data:    commonErr.Data,
		Code:    commonErr.Code,
	})
}

func ConvertString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case error:
		return t.Error()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func ConvertInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	}
	return 0
}
