package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf key so messages match the YAML and
// the APP_ environment variables.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}

		return name
	})

	return v
}

// Validate checks field rules first, then the rules that span sections.
// The service refuses to start while either fails.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if errs := c.crossFieldErrors(); len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// crossFieldErrors covers relationships a struct tag cannot express.
func (c *Config) crossFieldErrors() []error {
	var errs []error

	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		errs = append(errs, errors.New("tmdb.api_key must not be blank"))
	}

	if u, err := url.Parse(c.TMDB.BaseURL); err == nil && u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("tmdb.base_url must use http or https, got %q", u.Scheme))
	}

	// A TMDB call that outlives the route deadline can never be answered.
	if c.Client.Timeout > c.Server.RequestTimeout {
		errs = append(errs, fmt.Errorf("client.timeout (%s) must not exceed server.request_timeout (%s)",
			c.Client.Timeout, c.Server.RequestTimeout))
	}

	if c.Client.RateLimit.RPS > 0 && c.Client.RateLimit.MaxWait >= c.Client.Timeout {
		errs = append(errs, fmt.Errorf("client.rate_limit.max_wait (%s) must be shorter than client.timeout (%s)",
			c.Client.RateLimit.MaxWait, c.Client.Timeout))
	}

	return errs
}

func formatValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func fieldMessage(fe validator.FieldError) string {
	key := keyPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if", "required_with":
		return fmt.Sprintf("%s is required when %s is set", key, strings.ToLower(fe.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "url":
		return key + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q validation", key, fe.Tag())
	}
}

// keyPath drops the root type from "Config.server.read_timeout".
func keyPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}
