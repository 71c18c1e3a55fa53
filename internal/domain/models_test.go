package domain

import (
	"encoding/json"
	"testing"
)

func TestQuestionWireDecoding(t *testing.T) {
	raw := `{
		"id": "q1",
		"text": "Cantidad de metros cuadrados",
		"inputType": "NUMBER",
		"isRequired": true,
		"serviceId": "fotografia",
		"displayOrder": 1,
		"pricingBaseUnits": 80,
		"pricingStepSize": 20,
		"pricingStepPrice": 1000,
		"options": []
	}`

	var q Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.InputKind != InputNumber || !q.IsRequired {
		t.Fatalf("unexpected question %+v", q)
	}
	if q.Pricing == nil {
		t.Fatalf("expected tier config to be assembled")
	}
	if q.Pricing.BaseUnits != 80 || q.Pricing.StepSize != 20 || q.Pricing.StepPrice != 1000 {
		t.Fatalf("unexpected tier config %+v", q.Pricing)
	}
}

func TestQuestionWirePartialTierConfigDropped(t *testing.T) {
	raw := `{"id":"q1","text":"m2","inputType":"NUMBER","pricingBaseUnits":80,"pricingStepSize":20}`

	var q Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Pricing != nil {
		t.Fatalf("expected partial tier config to decode as unconfigured, got %+v", q.Pricing)
	}
}

func TestQuestionWireRoundTrip(t *testing.T) {
	q := Question{
		ID:         "q1",
		Text:       "m2",
		InputKind:  InputNumber,
		IsRequired: true,
		ServiceID:  "fotografia",
		Pricing:    &TieredPricing{BaseUnits: 80, StepSize: 20, StepPrice: 1000},
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Question
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Pricing == nil || *got.Pricing != *q.Pricing {
		t.Fatalf("tier config lost in round trip: %+v", got.Pricing)
	}
}

func TestNewTieredPricingRejectsZeroStep(t *testing.T) {
	base, step, price := 80.0, 0.0, 1000.0
	if tp := NewTieredPricing(&base, &step, &price); tp != nil {
		t.Fatalf("expected nil for zero step size, got %+v", tp)
	}
}
