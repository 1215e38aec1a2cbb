package http

import (
	httpError "customer-service/src/pkg/http-error"
)

func badBody(err error) *httpError.CommonError {
	errObj := httpError.NewBadRequest()
	errObj.Message = "invalid request body: " + err.Error()
	return errObj
}
