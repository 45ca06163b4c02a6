// Package req decodes and validates JSON request bodies.
package req

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"telco_churn/pkg/errcodes"
)

// MaxBodyBytes bounds a single JSON payload.
const MaxBodyBytes = 1 << 20

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	validate = newValidator()                               //nolint:gochecknoglobals // skip
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	return v
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

// Read decodes the JSON body into dest and validates it. Malformed JSON,
// values of the wrong type and failed rules are all invalid arguments with
// the ValidationError code.
func Read(r *http.Request, dest any) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return invalid(fmt.Errorf("io.ReadAll: %w", err).Error(), "request body is too large or unreadable")
	}

	switch {
	case len(bytes.TrimSpace(body)) == 0:
		return invalid("empty body", "request body is empty")
	case !json.Valid(body):
		return invalid("malformed body", "request body is not valid JSON")
	}

	if err = json.Unmarshal(body, dest); err != nil {
		return invalid(fmt.Errorf("json.Unmarshal: %w", err).Error(), mistyped(body, dest))
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return invalid("validation error", describe(err))
	}

	return nil
}

func invalid(message, description string) error {
	return failure.NewInvalidArgumentError(
		message,
		failure.WithCode(errcodes.ValidationError),
		failure.WithDescription(description),
	)
}

// mistyped names the top-level fields whose JSON value does not fit the
// destination field type.
func mistyped(body []byte, dest any) string {
	const fallback = "request body must be a JSON object matching the schema"

	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fallback
	}

	t := reflect.TypeOf(dest)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return fallback
	}

	var parts []string

	for i := range t.NumField() {
		field := t.Field(i)

		value, ok := raw[jsonName(field)]
		if !ok || !field.IsExported() {
			continue
		}

		if err := json.Unmarshal(value, reflect.New(field.Type).Interface()); err != nil {
			parts = append(parts, jsonName(field)+": type")
		}
	}

	if len(parts) == 0 {
		return fallback
	}

	return "invalid fields: " + strings.Join(parts, ", ")
}

// describe lists failed fields as "field: rule" pairs.
func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}

	return "invalid fields: " + strings.Join(parts, ", ")
}
