// Package status holds the closed value sets written by the CRM: client and call
// statuses, POS departments and fuel types. Values read back from storage that are
// outside a set are kept as Legacy rather than rejected.
package status

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown value")

const (
	FleetNew           = "جديد"
	FleetOngoing       = "متابعة مستمرة"
	FleetContracted    = "تم التعاقد"
	FleetNotInterested = "لا يرغب"
	FleetContactLater  = "تواصل لاحقاً"
)

const (
	POSInterested      = "مهتم"
	POSNotInterested   = "غير مهتم"
	POSFollowUpLater   = "متابعة لاحقاً"
	POSSentForContract = "تم الإرسال للتعاقد"
)

const (
	DepartmentRetail     = "تجزئة"
	DepartmentServices   = "خدمات"
	DepartmentIndustry   = "صناعة"
	DepartmentGovernment = "حكومي"
	DepartmentUnset      = "غير محدد"
)

const (
	FuelPetrol = "بنزين"
	FuelDiesel = "سولار"
)

// Status is a parsed value. Legacy marks a stored value outside the current set.
type Status struct {
	Value  string
	Legacy bool
}

func (s Status) String() string {
	return s.Value
}

// Set is a closed enumeration with a label used when the stored value is null.
type Set struct {
	Name    string
	Default string
	values  []string
}

var (
	Fleet       = Set{Name: "status", Default: FleetNew, values: []string{FleetNew, FleetOngoing, FleetContracted, FleetNotInterested, FleetContactLater}}
	POSCall     = Set{Name: "status", Default: POSFollowUpLater, values: []string{POSInterested, POSNotInterested, POSFollowUpLater, POSSentForContract}}
	Departments = Set{Name: "department", Default: DepartmentUnset, values: []string{DepartmentRetail, DepartmentServices, DepartmentIndustry, DepartmentGovernment}}
	FuelTypes   = Set{Name: "fuel_type", values: []string{FuelPetrol, FuelDiesel}}
)

func (s Set) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

func (s Set) Contains(v string) bool {
	for _, known := range s.values {
		if known == v {
			return true
		}
	}
	return false
}

// Parse reads a stored value. A null or blank value resolves to the set default.
func (s Set) Parse(raw *string) Status {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Status{Value: s.Default}
	}
	v := strings.TrimSpace(*raw)
	return Status{Value: v, Legacy: !s.Contains(v)}
}

// ParseKnown validates a value about to be written.
func (s Set) ParseKnown(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if !s.Contains(v) {
		return "", fmt.Errorf("%s %q: %w", s.Name, raw, ErrUnknownStatus)
	}
	return v, nil
}

// ParseOptional validates a nullable value about to be written; blank becomes nil.
func (s Set) ParseOptional(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v, err := s.ParseKnown(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseEdit validates a nullable value written over stored. The stored value is
// accepted unchanged even when it is legacy; any other value must be known.
func (s Set) ParseEdit(raw, stored *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if stored != nil && strings.TrimSpace(*stored) == v {
		return &v, nil
	}
	return s.ParseOptional(raw)
}

// Label returns the display label of a nullable stored value.
func (s Set) Label(raw *string) string {
	return s.Parse(raw).Value
}
