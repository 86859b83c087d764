package idl

import (
	"errors"
	"fmt"
)

// Problem describes one finding of Check.
type Problem struct {
	Message string
	Field   string
}

func (p Problem) String() string {
	if p.Field != "" {
		return fmt.Sprintf("message %s: %s", p.Message, p.Field)
	}
	return p.Message
}

// Check reports duplicate message names and duplicate field numbers or
// names within a message. The parser accepts both; Check is opt-in.
func (d *Document) Check() []Problem {
	var problems []Problem
	seen := make(map[string]bool)
	for _, m := range d.Messages {
		if seen[m.Name] {
			problems = append(problems, Problem{Message: fmt.Sprintf("duplicate message %s", m.Name)})
		}
		seen[m.Name] = true

		numbers := make(map[uint32]string)
		names := make(map[string]bool)
		for _, f := range m.Fields {
			if prev, ok := numbers[f.Number]; ok {
				problems = append(problems, Problem{
					Message: m.Name,
					Field:   fmt.Sprintf("field number %d used by both %s and %s", f.Number, prev, f.Name),
				})
			} else {
				numbers[f.Number] = f.Name
			}
			if names[f.Name] {
				problems = append(problems, Problem{
					Message: m.Name,
					Field:   fmt.Sprintf("duplicate field %s", f.Name),
				})
			}
			names[f.Name] = true
		}
	}
	return problems
}

// CheckError folds the problems of Check into one error, or nil.
func (d *Document) CheckError() error {
	problems := d.Check()
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = errors.New(p.String())
	}
	return errors.Join(errs...)
}
