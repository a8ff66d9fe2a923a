package order

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

type Priority int

const (
	UnknownPriority Priority = iota
	Normal
	High
	Urgent
)

var priorityNames = map[Priority]string{
	Normal: "NORMAL",
	High:   "HIGH",
	Urgent: "URGENT",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

func (p Priority) Validate() error {
	if _, ok := priorityNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// ParsePriority treats an empty name as Normal.
func ParsePriority(name string) (Priority, error) {
	if name == "" {
		return Normal, nil
	}
	for p, n := range priorityNames {
		if n == name {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", name))
}
