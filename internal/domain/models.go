package domain

import "encoding/json"

// Service is a purchasable offering (photography, floor plans, ...) with a base price.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	BasePrice   float64 `json:"basePrice"`
}

// InputKind enumerates the supported question field kinds.
type InputKind string

const (
	InputText   InputKind = "TEXT"
	InputNumber InputKind = "NUMBER"
	InputSelect InputKind = "SELECT"
	InputRadio  InputKind = "RADIO"
)

// HasOptions reports whether a question of this kind is answered via options.
func (k InputKind) HasOptions() bool {
	switch k {
	case InputSelect, InputRadio:
		return true
	case InputText, InputNumber:
		return false
	}
	return false
}

// Option represents a selectable choice for a SELECT/RADIO question.
type Option struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	Description   string  `json:"description,omitempty"`
	PriceModifier float64 `json:"priceModifier"`
}

// TieredPricing bills NUMBER answers beyond a free allowance in fixed-size
// increments. The three parameters are configured together or not at all.
type TieredPricing struct {
	BaseUnits float64
	StepSize  float64
	StepPrice float64
}

// NewTieredPricing builds the tier configuration from independently optional
// wire fields. It returns nil unless all three parameters are present and the
// step size is positive; partial configuration degrades to "not configured".
func NewTieredPricing(baseUnits, stepSize, stepPrice *float64) *TieredPricing {
	if baseUnits == nil || stepSize == nil || stepPrice == nil {
		return nil
	}
	if *stepSize <= 0 {
		return nil
	}
	return &TieredPricing{BaseUnits: *baseUnits, StepSize: *stepSize, StepPrice: *stepPrice}
}

// Question is a configurable form field, attached to one service or global.
type Question struct {
	ID                string
	Text              string
	InputKind         InputKind
	IsRequired        bool
	ServiceID         string // empty means global: shown for every selection
	DisplayOrder      int
	DisplaySection    string
	DependsOnOptionID string         // empty means always visible
	Pricing           *TieredPricing // NUMBER questions only
	Options           []Option
}

// questionWire is the flat shape exchanged with clients and stored as JSONB:
// tier parameters travel as three optional scalars.
type questionWire struct {
	ID                string    `json:"id"`
	Text              string    `json:"text"`
	InputType         InputKind `json:"inputType"`
	IsRequired        bool      `json:"isRequired"`
	ServiceID         string    `json:"serviceId,omitempty"`
	DisplayOrder      int       `json:"displayOrder"`
	DisplaySection    string    `json:"displaySection,omitempty"`
	DependsOnOptionID string    `json:"dependsOnOptionId,omitempty"`
	PricingBaseUnits  *float64  `json:"pricingBaseUnits,omitempty"`
	PricingStepSize   *float64  `json:"pricingStepSize,omitempty"`
	PricingStepPrice  *float64  `json:"pricingStepPrice,omitempty"`
	Options           []Option  `json:"options"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		ID:                q.ID,
		Text:              q.Text,
		InputType:         q.InputKind,
		IsRequired:        q.IsRequired,
		ServiceID:         q.ServiceID,
		DisplayOrder:      q.DisplayOrder,
		DisplaySection:    q.DisplaySection,
		DependsOnOptionID: q.DependsOnOptionID,
		Options:           q.Options,
	}
	if q.Pricing != nil {
		base, step, price := q.Pricing.BaseUnits, q.Pricing.StepSize, q.Pricing.StepPrice
		w.PricingBaseUnits = &base
		w.PricingStepSize = &step
		w.PricingStepPrice = &price
	}
	return json.Marshal(w)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*q = Question{
		ID:                w.ID,
		Text:              w.Text,
		InputKind:         w.InputType,
		IsRequired:        w.IsRequired,
		ServiceID:         w.ServiceID,
		DisplayOrder:      w.DisplayOrder,
		DisplaySection:    w.DisplaySection,
		DependsOnOptionID: w.DependsOnOptionID,
		Pricing:           NewTieredPricing(w.PricingBaseUnits, w.PricingStepSize, w.PricingStepPrice),
		Options:           w.Options,
	}
	return nil
}

// QuestionResponse is the user's answer to one question. Option questions
// carry OptionID; TEXT/NUMBER questions carry TextValue (numbers serialized
// as text).
type QuestionResponse struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId,omitempty"`
	TextValue  string `json:"textValue,omitempty"`
}

// Catalog bundles the services on offer and their question set.
type Catalog struct {
	ID        string     `json:"id"`
	Services  []Service  `json:"services"`
	Questions []Question `json:"questions"`
}

// ServiceByID looks up a service in the catalog.
func (c Catalog) ServiceByID(id string) (Service, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
