package common

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/podlift/backend/pkg/errorx"
	"golang.org/x/exp/slices"
)

var Industries = []string{
	"Technology",
	"Finance",
	"Healthcare",
	"Marketing",
	"Sales",
	"Education",
	"Consulting",
	"Real Estate",
	"Manufacturing",
	"Other",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterValidation("linkedin_url", func(fl validator.FieldLevel) bool {
			return IsLinkedInURL(fl.Field().String())
		})
		validate.RegisterValidation("industry", func(fl validator.FieldLevel) bool {
			return slices.Contains(Industries, fl.Field().String())
		})
	})

	return validate
}

func IsLinkedInURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

// Validate returns an errorx.BadRequest naming the first invalid field.
func Validate(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "required" {
			return errorx.New(errorx.BadRequest, "Missing %s", verrs[0].Field())
		}

		return errorx.New(errorx.BadRequest, "Invalid %s", verrs[0].Field())
	}

	return errorx.New(errorx.BadRequest, "Invalid request")
}
