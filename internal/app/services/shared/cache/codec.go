package cache

import (
	"doctor-appointment-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

func Encode(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}
	return string(data), nil
}

func Decode(raw string, target interface{}) error {
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return exceptions.ErrCannotUnmarshalJSON(err)
	}
	return nil
}
