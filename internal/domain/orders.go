package domain

import "time"

// Zone identifies the coverage area of a property.
type Zone string

const (
	ZoneCABA Zone = "CABA"
	ZoneGBA  Zone = "GBA"
)

// PropertyType categorizes the photographed property.
type PropertyType string

const (
	PropertyCasa         PropertyType = "CASA"
	PropertyDepartamento PropertyType = "DEPARTAMENTO"
	PropertyOficina      PropertyType = "OFICINA"
	PropertyLocal        PropertyType = "LOCAL"
	PropertyTerreno      PropertyType = "TERRENO"
)

// OrderDetails carries the property and contact data captured in the form's
// final steps.
type OrderDetails struct {
	CustomerName  string       `json:"name"`
	CustomerEmail string       `json:"email"`
	Address       string       `json:"address"`
	Details       string       `json:"details,omitempty"`
	PropertySize  string       `json:"propertySize"`
	Zone          Zone         `json:"zone"`
	PropertyType  PropertyType `json:"propertyType"`
}

// Order is one submitted record: the form produces one order per selected
// service, each carrying that service's responses plus the global ones. The
// total is the quote for the whole selection, sent along for the backend
// cross-check; the server remains the source of truth for the final price.
type Order struct {
	ID            string             `json:"id"`
	ServiceID     string             `json:"serviceId"`
	CustomerName  string             `json:"name"`
	CustomerEmail string             `json:"email"`
	Address       string             `json:"address"`
	Details       string             `json:"details,omitempty"`
	PropertySize  string             `json:"propertySize"`
	Zone          Zone               `json:"zone"`
	PropertyType  PropertyType       `json:"propertyType"`
	Responses     []QuestionResponse `json:"responses"`
	TotalPrice    float64            `json:"totalPrice"`
	CreatedAt     time.Time          `json:"createdAt"`
}
