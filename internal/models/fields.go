package models

import (
	"strconv"

	"smart-fuel-crm/internal/placeholder"
)

const (
	unknownClient   = "عميل غير معروف"
	unknownPOSField = "غير معروف"
)

func (c Client) Placeholders() placeholder.Fields {
	var cars *string
	if c.NumberOfCars != nil {
		s := strconv.Itoa(*c.NumberOfCars)
		cars = &s
	}
	name := c.CompanyName
	return placeholder.Fields{
		"company_name":   &name,
		"contact_person": c.ContactPerson,
		"phone":          c.Phone,
		"email":          c.Email,
		"number_of_cars": cars,
		"fuel_type":      c.FuelType,
		"address":        c.Address,
		"status":         c.Status,
	}
}

func (p POSClient) Placeholders() placeholder.Fields {
	code, name := p.ClientCode, p.ClientName
	return placeholder.Fields{
		"client_code": &code,
		"client_name": &name,
		"department":  p.Department,
		"phone":       p.Phone,
		"status":      p.Status,
	}
}

// ExportValue returns the value of a column by its JSON field name.
func (c Client) ExportValue(field string) any {
	switch field {
	case "id":
		return c.ID
	case "company_name":
		return c.CompanyName
	case "contact_person":
		return c.ContactPerson
	case "phone":
		return c.Phone
	case "email":
		return c.Email
	case "number_of_cars":
		return c.NumberOfCars
	case "fuel_type":
		return c.FuelType
	case "status":
		return c.Status
	case "address":
		return c.Address
	case "created_at":
		return c.CreatedAt
	}
	return nil
}

func (f FollowUp) ExportValue(field string) any {
	switch field {
	case "id":
		return f.ID
	case "company_name":
		if f.Client == nil {
			return unknownClient
		}
		return f.Client.CompanyName
	case "feedback":
		return f.Feedback
	case "status":
		return f.Status
	case "next_follow_up_date":
		return f.NextFollowUpDate
	case "created_at":
		return f.CreatedAt
	case "full_name", "user_full_name":
		return f.UserFullName
	}
	return nil
}

func (p POSClient) ExportValue(field string) any {
	switch field {
	case "id":
		return p.ID
	case "client_code":
		return p.ClientCode
	case "client_name":
		return p.ClientName
	case "department":
		return p.Department
	case "phone":
		return p.Phone
	case "status":
		return p.Status
	case "created_at":
		return p.CreatedAt
	}
	return nil
}

func (l POSCallLog) ExportValue(field string) any {
	switch field {
	case "id":
		return l.ID
	case "client_code":
		if l.POSClient == nil {
			return unknownPOSField
		}
		return l.POSClient.ClientCode
	case "client_name":
		if l.POSClient == nil {
			return unknownPOSField
		}
		return l.POSClient.ClientName
	case "call_date":
		return l.CallDate
	case "call_summary":
		return l.CallSummary
	case "feedback":
		return l.Feedback
	case "status":
		return l.Status
	case "notes":
		return l.Notes
	case "next_follow_up_date":
		return l.NextFollowUpDate
	case "created_at":
		return l.CreatedAt
	case "user_full_name":
		return l.UserFullName
	}
	return nil
}
