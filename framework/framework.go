// Package framework names the target frameworks a gateway can be generated
// for and maps IDL types onto each framework's language.
package framework

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

type Framework int

const (
	Axum Framework = iota
	NestJS
	Spring
)

// Default is used when no framework is requested.
const Default = Axum

var frameworkNames = [...]string{
	Axum:   "axum",
	NestJS: "nestjs",
	Spring: "spring",
}

var frameworkDescriptions = [...]string{
	Axum:   "Rust, axum + tonic",
	NestJS: "TypeScript, NestJS + @grpc/grpc-js",
	Spring: "Java, Spring Boot + grpc-java",
}

// All lists the supported frameworks in a stable order.
func All() []Framework {
	return []Framework{Axum, NestJS, Spring}
}

// Parse accepts a framework name in any letter case.
func Parse(name string) (Framework, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, f := range All() {
		if frameworkNames[f] == lower {
			return f, nil
		}
	}
	return 0, &UnsupportedError{Name: name}
}

// UnsupportedError is returned by Parse for unknown names.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("Unsupported framework: %s", e.Name)
}

func (f Framework) String() string {
	if f < Axum || f > Spring {
		return fmt.Sprintf("Framework(%d)", int(f))
	}
	return frameworkNames[f]
}

// Description is a short human readable summary of the generated stack.
func (f Framework) Description() string {
	if f < Axum || f > Spring {
		return ""
	}
	return frameworkDescriptions[f]
}

// Set implements pflag.Value.
func (f *Framework) Set(value string) error {
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Framework) Type() string {
	return "framework"
}

// ServiceFileName converts a service name into the base file name the
// framework's conventions expect for per-service sources.
func (f Framework) ServiceFileName(service string) string {
	switch f {
	case NestJS:
		return strcase.ToKebab(service)
	case Spring:
		return strcase.ToCamel(service)
	}
	return strcase.ToSnake(service)
}

// ProtoDir is the project-relative directory IDL files are copied into.
func (f Framework) ProtoDir() string {
	if f == Spring {
		return "src/main/proto"
	}
	return "proto"
}
