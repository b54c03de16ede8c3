package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mytodos/shared/constant"
	"mytodos/shared/failure"
	"net/http"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/go-viper/mapstructure/v2"
)

const formTag = "form"

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Report fields by their wire name so messages read "Missing parameter 'title'".
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{formTag, "json"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}

			if name != "" {
				return name
			}
		}

		return field.Name
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Bind decodes the request body into data according to its content type and validates it.
// JSON bodies are decoded with encoding/json; url-encoded and multipart forms are mapped
// onto the struct's `form` tags. A request without a content type is treated as a form.
// Bodies are capped at RequestMaxMemory whatever their type.
func Bind[T any](w http.ResponseWriter, r *http.Request, data *T) error {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constant.RequestHeaderContentType))

	switch mediaType {
	case constant.ContentTypeJSON:
		return Validate(r.Body, data)
	case constant.ContentTypeMultipartFormData:
		if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
			return bodyError("failed to parse multipart form", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return bodyError("failed to parse form", err)
		}
	}

	if err := decodeForm(r.PostForm, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

func decodeForm[T any](values map[string][]string, data *T) error {
	flat := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			flat[key] = vals[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          formTag,
		WeaklyTypedInput: true,
		Result:           data,
	})
	if err != nil {
		return fmt.Errorf("failed to build form decoder: %w", err)
	}

	if err := decoder.Decode(flat); err != nil {
		return failure.UnprocessableEntity(fmt.Sprintf("failed to decode form: %v", err)) //nolint:wrapcheck
	}

	return nil
}

// Validate reads JSON from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. An empty body decodes to the zero value so that
// required fields are reported as missing rather than as a decoding failure.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)

	var typeErr *json.UnmarshalTypeError

	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.As(err, &typeErr) && typeErr.Field == constant.Empty:
		// The body is valid JSON but not an object, e.g. an array.
		return failure.BadRequestFromString(constant.ResponseErrorInvalidBody) //nolint:wrapcheck
	case errors.As(err, &typeErr):
		return failure.UnprocessableEntity(fmt.Sprintf(constant.ResponseErrorInvalidParameter, typeErr.Field)) //nolint:wrapcheck
	default:
		return bodyError("failed to decode request body", err)
	}

	return ValidateStruct(data)
}

func bodyError(msg string, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return failure.RequestEntityTooLarge(constant.ResponseErrorBodyTooLarge) //nolint:wrapcheck
	}

	return failure.BadRequest(fmt.Errorf("%s: %w", msg, err)) //nolint:wrapcheck
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.UnprocessableEntity(msg) //nolint:wrapcheck
	}

	return nil
}
