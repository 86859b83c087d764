package idl

import "encoding/json"

// DefaultSyntax is the syntax label of a document that has no syntax
// statement.
const DefaultSyntax = "proto3"

// Document is the result of parsing one IDL source. It is built once by the
// parser and treated as read-only afterwards.
type Document struct {
	Package  string            `json:"package,omitempty"`
	Syntax   string            `json:"syntax"`
	Options  map[string]string `json:"options,omitempty"`
	Imports  []string          `json:"imports,omitempty"`
	Services []*Service        `json:"services,omitempty"`
	Messages []*Message        `json:"messages,omitempty"`
}

func NewDocument() *Document {
	return &Document{
		Syntax:  DefaultSyntax,
		Options: make(map[string]string),
	}
}

// SetOption records an option. A repeated name overwrites the earlier value.
func (d *Document) SetOption(name, value string) {
	d.Options[name] = value
}

func (d *Document) Service(name string) *Service {
	for _, s := range d.Services {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Message returns the first message declared with name.
func (d *Document) Message(name string) *Message {
	for _, m := range d.Messages {
		if m.Name == name {
			return m
		}
	}
	return nil
}

type Service struct {
	Name    string
	Methods map[string]*Method
	order   []string
}

func NewService(name string) *Service {
	return &Service{
		Name:    name,
		Methods: make(map[string]*Method),
	}
}

// AddMethod inserts m keyed by its name. It returns false, leaving the
// service untouched, when a method with that name already exists.
func (s *Service) AddMethod(m *Method) bool {
	if _, ok := s.Methods[m.Name]; ok {
		return false
	}
	s.Methods[m.Name] = m
	s.order = append(s.order, m.Name)
	return true
}

func (s *Service) Method(name string) *Method {
	return s.Methods[name]
}

// MethodNames lists method names in declaration order.
func (s *Service) MethodNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// MarshalJSON lists methods in declaration order.
func (s *Service) MarshalJSON() ([]byte, error) {
	methods := make([]*Method, 0, len(s.order))
	for _, name := range s.order {
		methods = append(methods, s.Methods[name])
	}
	return json.Marshal(struct {
		Name    string    `json:"name"`
		Methods []*Method `json:"methods"`
	}{s.Name, methods})
}

type Method struct {
	Name         string `json:"name"`
	RequestType  string `json:"request_type"`
	ResponseType string `json:"response_type"`
}

type Message struct {
	Name   string   `json:"name"`
	Fields []*Field `json:"fields"`
}

type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Number   uint32 `json:"number"`
	Repeated bool   `json:"repeated,omitempty"`
}

// IsScalar reports whether the field's type is a scalar keyword rather than
// a message reference.
func (f *Field) IsScalar() bool {
	_, ok := ParseScalar(f.Type)
	return ok
}
