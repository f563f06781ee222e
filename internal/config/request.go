package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
)

// UserHeader carries the opaque user key. It is a correlation key, not an
// authenticated identity.
const UserHeader = "X-User-ID"

var validate = validator.New()

// DecodeJSON reads the request body into dst and runs its validate tags.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.Input("invalid request body")
	}
	return Validate(dst)
}

// Validate runs the struct's validate tags and reports the first failures as
// an input error.
func Validate(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Input("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return apperr.Input("%s", strings.Join(msgs, ", "))
}

// UserID returns the caller's user key or an input error when it is absent.
func UserID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(UserHeader))
	if id == "" {
		return "", apperr.Input("missing %s header", UserHeader)
	}
	return id, nil
}
