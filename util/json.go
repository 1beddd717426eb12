package util

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func ReadJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.New("failed to read request body")
	}

	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.New("request body is not valid json")
	}

	return nil
}
