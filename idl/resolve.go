package idl

import (
	"errors"
	"fmt"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrMethodNotFound  = errors.New("RPC method not found")
	ErrMessageNotFound = errors.New("message not found")
)

// ResolutionError names the lookup that failed. It unwraps to one of
// ErrServiceNotFound, ErrMethodNotFound or ErrMessageNotFound.
type ResolutionError struct {
	Kind    error
	Name    string
	Service string
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case ErrServiceNotFound:
		return fmt.Sprintf("service '%s' not found", e.Name)
	case ErrMethodNotFound:
		return fmt.Sprintf("RPC method '%s' not found in service '%s'", e.Name, e.Service)
	}
	return fmt.Sprintf("message '%s' not found", e.Name)
}

func (e *ResolutionError) Unwrap() error {
	return e.Kind
}

// FieldRef is a copy of a message field handed to resolution callers.
type FieldRef struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Number   uint32 `json:"number"`
	Repeated bool   `json:"repeated,omitempty"`
}

// Resolution holds the request and response shapes of one method.
type Resolution struct {
	RequestType    string     `json:"request_type"`
	ResponseType   string     `json:"response_type"`
	RequestFields  []FieldRef `json:"request_fields"`
	ResponseFields []FieldRef `json:"response_fields"`
}

// Resolve looks up service and method and copies the fields of the request
// and response messages. Empty requestType or responseType fall back to the
// method's declared types. The document is never modified.
func (d *Document) Resolve(service, method, requestType, responseType string) (*Resolution, error) {
	svc := d.Service(service)
	if svc == nil {
		return nil, &ResolutionError{Kind: ErrServiceNotFound, Name: service}
	}
	m := svc.Method(method)
	if m == nil {
		return nil, &ResolutionError{Kind: ErrMethodNotFound, Name: method, Service: service}
	}

	if requestType == "" {
		requestType = m.RequestType
	}
	if responseType == "" {
		responseType = m.ResponseType
	}

	req, err := d.messageFields(requestType)
	if err != nil {
		return nil, err
	}
	resp, err := d.messageFields(responseType)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		RequestType:    requestType,
		ResponseType:   responseType,
		RequestFields:  req,
		ResponseFields: resp,
	}, nil
}

func (d *Document) messageFields(name string) ([]FieldRef, error) {
	msg := d.Message(name)
	if msg == nil {
		return nil, &ResolutionError{Kind: ErrMessageNotFound, Name: name}
	}
	fields := make([]FieldRef, len(msg.Fields))
	for i, f := range msg.Fields {
		fields[i] = FieldRef{
			Name:     f.Name,
			Type:     f.Type,
			Number:   f.Number,
			Repeated: f.Repeated,
		}
	}
	return fields, nil
}
