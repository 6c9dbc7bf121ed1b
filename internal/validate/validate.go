// Package validate checks candidate movies before they enter the collection.
package validate

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/cinelist/internal/domain"
)

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

// schemes that are meaningless without a host
var hostSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// movieValidate is shared; validator.Validate caches struct metadata and is
// safe for reuse.
var movieValidate *validator.Validate

func init() {
	movieValidate = validator.New(validator.WithRequiredStructEnabled())
	_ = movieValidate.RegisterValidation("year4", validateYear)
	_ = movieValidate.RegisterValidation("absurl", validateAbsoluteURL)
}

func validateYear(fl validator.FieldLevel) bool {
	return yearPattern.MatchString(fl.Field().String())
}

func validateAbsoluteURL(fl validator.FieldLevel) bool {
	return IsAbsoluteURL(fl.Field().String())
}

// stripped from anywhere in a URL before parsing, as browsers do
var urlNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// IsAbsoluteURL reports whether s parses as a URL with a scheme and something
// to address (host, opaque part or path). Surrounding whitespace is ignored
// and spaces in the path are allowed; whitespace in the host is not.
func IsAbsoluteURL(s string) bool {
	s = urlNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	if hostSchemes[strings.ToLower(u.Scheme)] {
		host := schemeHost(u)
		return host != "" && !strings.ContainsAny(host, " ")
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

// schemeHost returns the host of a URL whose scheme requires one. The
// slashes after the scheme are optional, so "https:example.com" and
// "http:///example.com" both name example.com.
func schemeHost(u *url.URL) string {
	if u.Host != "" {
		return u.Host
	}
	rest := u.Opaque
	if rest == "" {
		rest = u.Path
	}
	host, _, _ := strings.Cut(strings.TrimLeft(rest, "/\\"), "/")
	return host
}

// rank orders failure kinds; the lowest rank is reported
func rank(kind error) int {
	switch kind {
	case domain.ErrMissingFields:
		return 0
	case domain.ErrInvalidYear:
		return 1
	default:
		return 2
	}
}

func kindForTag(tag string) error {
	switch tag {
	case "required":
		return domain.ErrMissingFields
	case "year4":
		return domain.ErrInvalidYear
	default:
		return domain.ErrInvalidPosterURL
	}
}

// Validate returns nil when the fields may be stored, or a
// *domain.ValidationError. Checks run in order and the first failing rule
// wins: missing fields, then year format, then poster URL.
func Validate(fields domain.MovieFields) error {
	err := movieValidate.Struct(fields)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &domain.ValidationError{Kind: domain.ErrMissingFields}
	}

	var worst *domain.ValidationError
	for _, fe := range fieldErrs {
		kind := kindForTag(fe.Tag())
		if worst == nil || rank(kind) < rank(worst.Kind) {
			worst = &domain.ValidationError{Kind: kind, Field: strings.ToLower(fe.Field())}
		}
	}
	return worst
}

// Message returns the user-facing text for err, or "" if err is nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message()
	}
	return err.Error()
}
