package util

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aionhq/gate/pkg/log"
)

type Response struct {
	StatusCode int `json:"-"`
}

func (res Response) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, res.StatusCode)
	return nil
}

type ServerResponse struct {
	Response
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func NewServerResponse(msg string, object interface{}, statusCode int) ServerResponse {
	data, err := json.Marshal(object)
	if err != nil {
		log.Errorf("unable to marshal response data - %s", err)
	}

	return ServerResponse{
		Status:  true,
		Message: msg,
		Data:    data,
		Response: Response{
			StatusCode: statusCode,
		},
	}
}

// ServiceError carries an explicit HTTP status decided at the point the
// error was raised. The error responder passes the status through
// unchanged.
type ServiceError struct {
	errCode int
	errMsg  error
}

func NewServiceError(errCode int, errMsg error) *ServiceError {
	return &ServiceError{errCode: errCode, errMsg: errMsg}
}

func (s *ServiceError) Error() string {
	return s.errMsg.Error()
}

func (s *ServiceError) StatusCode() int {
	return s.errCode
}

func (s *ServiceError) Unwrap() error {
	return s.errMsg
}
