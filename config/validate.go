package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationError reports one invalid value. Field is a dotted path into
// the configuration, e.g. "spec.services[0].endpoints[1].method".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var httpMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"PATCH":  true,
	"DELETE": true,
}

var sameSiteValues = map[string]bool{
	"Strict": true,
	"Lax":    true,
	"None":   true,
}

type validator struct {
	errs []error
}

func (v *validator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.fail(field, "is required")
	}
}

// Validate checks the structure of cfg without looking at IDL files. All
// problems are reported, joined into one error; each is a
// *ValidationError.
func Validate(cfg *Config) error {
	v := &validator{}

	v.required("metadata.name", cfg.Metadata.Name)
	if cfg.Metadata.Version == "" {
		v.fail("metadata.version", "is required")
	} else if _, err := semver.StrictNewVersion(strings.TrimPrefix(cfg.Metadata.Version, "v")); err != nil {
		v.fail("metadata.version", "%q is not a semantic version", cfg.Metadata.Version)
	}

	v.required("spec.host", cfg.Spec.Host)
	if cfg.Spec.Port < 1 || cfg.Spec.Port > 65535 {
		v.fail("spec.port", "%d is outside 1..65535", cfg.Spec.Port)
	}
	if len(cfg.Spec.Services) == 0 {
		v.fail("spec.services", "at least one service is required")
	}

	names := make(map[string]bool)
	for i, svc := range cfg.Spec.Services {
		field := fmt.Sprintf("spec.services[%d]", i)
		if svc == nil {
			v.fail(field, "is empty")
			continue
		}
		v.required(field+".name", svc.Name)
		if svc.Name != "" && names[svc.Name] {
			v.fail(field+".name", "duplicate service %s", svc.Name)
		}
		names[svc.Name] = true
		v.required(field+".proto", svc.Proto)
		v.required(field+".url", svc.URL)
		v.endpoints(field, svc.Endpoints)
	}

	return errors.Join(v.errs...)
}

func (v *validator) endpoints(parent string, endpoints []*Endpoint) {
	routes := make(map[string]bool)
	for i, ep := range endpoints {
		field := fmt.Sprintf("%s.endpoints[%d]", parent, i)
		if ep == nil {
			v.fail(field, "is empty")
			continue
		}
		v.required(field+".rpc", ep.RPC)
		if !httpMethods[ep.Method] {
			v.fail(field+".method", "%q is not one of GET, POST, PUT, PATCH, DELETE", ep.Method)
		}
		if !strings.HasPrefix(ep.Path, "/") {
			v.fail(field+".path", "%q must start with /", ep.Path)
		}
		route := ep.Method + " " + ep.Path
		if routes[route] {
			v.fail(field, "duplicate route %s", route)
		}
		routes[route] = true

		for j, c := range ep.Response.Cookies {
			cf := fmt.Sprintf("%s.response.cookies[%d]", field, j)
			if c == nil {
				v.fail(cf, "is empty")
				continue
			}
			v.required(cf+".name", c.Name)
			if c.Options == nil {
				continue
			}
			if c.Options.SameSite != "" && !sameSiteValues[c.Options.SameSite] {
				v.fail(cf+".options.sameSite", "%q is not one of Strict, Lax, None", c.Options.SameSite)
			}
			if c.Options.MaxAge != nil && *c.Options.MaxAge < 0 {
				v.fail(cf+".options.maxAge", "must not be negative")
			}
		}
	}
}

// ValidationErrors unpacks the individual problems of an error returned by
// Validate or Load.
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if ve, ok := err.(*ValidationError); ok {
			out = append(out, ve)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
