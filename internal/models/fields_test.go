package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-fuel-crm/internal/placeholder"
)

func ptr[T any](v T) *T { return &v }

func TestClientPlaceholders(t *testing.T) {
	c := Client{CompanyName: "Acme", ContactPerson: ptr("Ali"), NumberOfCars: ptr(12), FuelType: ptr("سولار")}

	got := placeholder.Render("{company_name}/{contact_person}/{number_of_cars}/{fuel_type}/{email}", c.Placeholders())
	assert.Equal(t, "Acme/Ali/12/سولار/", got)
}

func TestPOSClientPlaceholders(t *testing.T) {
	p := POSClient{ClientCode: "C-1", ClientName: "Shop", Department: ptr("تجزئة")}

	got := placeholder.Render("{client_code} {client_name} {department} {phone}", p.Placeholders())
	assert.Equal(t, "C-1 Shop تجزئة ", got)
}

func TestFollowUpExportValueEnrichesCompany(t *testing.T) {
	f := FollowUp{Status: "تم التعاقد"}
	assert.Equal(t, "عميل غير معروف", f.ExportValue("company_name"))

	f.Client = &Client{CompanyName: "Acme"}
	assert.Equal(t, "Acme", f.ExportValue("company_name"))
	assert.Equal(t, "تم التعاقد", f.ExportValue("status"))
	assert.Nil(t, f.ExportValue("no_such_field"))
}

func TestCallLogExportValueEnrichesClient(t *testing.T) {
	l := POSCallLog{}
	assert.Equal(t, "غير معروف", l.ExportValue("client_code"))
	assert.Equal(t, "غير معروف", l.ExportValue("client_name"))

	l.POSClient = &POSClient{ClientCode: "C-9", ClientName: "Kiosk"}
	assert.Equal(t, "C-9", l.ExportValue("client_code"))
	assert.Equal(t, "Kiosk", l.ExportValue("client_name"))
}
