// Package config loads gateway configuration files and binds their
// endpoints to the messages declared in the referenced IDL files.
package config

import (
	"github.com/dhamidi/havoc/idl"
)

// Config is the root of a gateway configuration file.
type Config struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Spec     Spec     `json:"spec" yaml:"spec"`

	// Path is the file the configuration was loaded from, if any. Relative
	// IDL paths are resolved against its directory.
	Path string `json:"-" yaml:"-"`
}

type Metadata struct {
	Name        string `json:"name" yaml:"name" jsonschema:"minLength=1"`
	Version     string `json:"version" yaml:"version" jsonschema:"description=Semantic version of the gateway"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
}

type Spec struct {
	Host     string     `json:"host" yaml:"host" jsonschema:"minLength=1"`
	Port     int        `json:"port" yaml:"port" jsonschema:"minimum=1,maximum=65535"`
	Services []*Service `json:"services" yaml:"services"`
}

// Service maps one IDL service onto a set of HTTP endpoints.
type Service struct {
	Name      string      `json:"name" yaml:"name" jsonschema:"minLength=1"`
	Proto     string      `json:"proto" yaml:"proto" jsonschema:"description=Path to the IDL file declaring the service"`
	URL       string      `json:"url" yaml:"url" jsonschema:"description=Address of the upstream RPC server"`
	Endpoints []*Endpoint `json:"endpoints" yaml:"endpoints"`

	// Document is set by Bind.
	Document *idl.Document `json:"-" yaml:"-"`
}

type Endpoint struct {
	RPC      string   `json:"rpc" yaml:"rpc" jsonschema:"minLength=1"`
	Method   string   `json:"method" yaml:"method" jsonschema:"enum=GET,enum=POST,enum=PUT,enum=PATCH,enum=DELETE"`
	Path     string   `json:"path" yaml:"path" jsonschema:"pattern=^/"`
	Request  Request  `json:"request" yaml:"request"`
	Response Response `json:"response" yaml:"response"`
}

type Request struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"description=Request message; defaults to the RPC's declared request"`

	Fields []idl.FieldRef `json:"-" yaml:"-"`
}

type Response struct {
	Type    string    `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"description=Response message; defaults to the RPC's declared response"`
	Cookies []*Cookie `json:"cookies,omitempty" yaml:"cookies,omitempty"`

	Fields []idl.FieldRef `json:"-" yaml:"-"`
}

// Cookie names a response field that is sent to the client as a cookie
// instead of in the body.
type Cookie struct {
	Name    string         `json:"name" yaml:"name" jsonschema:"minLength=1"`
	Options *CookieOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

type CookieOptions struct {
	HTTPOnly    *bool  `json:"httpOnly,omitempty" yaml:"httpOnly,omitempty"`
	Secure      *bool  `json:"secure,omitempty" yaml:"secure,omitempty"`
	SameSite    string `json:"sameSite,omitempty" yaml:"sameSite,omitempty" jsonschema:"enum=Strict,enum=Lax,enum=None"`
	MaxAge      *int64 `json:"maxAge,omitempty" yaml:"maxAge,omitempty" jsonschema:"minimum=0"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Domain      string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Partitioned *bool  `json:"partitioned,omitempty" yaml:"partitioned,omitempty"`
}

// Service returns the configured service with the given name.
func (c *Config) Service(name string) *Service {
	for _, s := range c.Spec.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// CookieNames lists the cookie names of the response in order.
func (r *Response) CookieNames() []string {
	names := make([]string, 0, len(r.Cookies))
	for _, c := range r.Cookies {
		names = append(names, c.Name)
	}
	return names
}
