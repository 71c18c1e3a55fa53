package domain

import (
	"reflect"
	"testing"
)

func TestComputeQuoteEmptyInput(t *testing.T) {
	quote := ComputeQuote(nil, nil, nil, nil)
	if len(quote.Items) != 0 {
		t.Fatalf("expected no items, got %+v", quote.Items)
	}
	if quote.Total != 0 {
		t.Fatalf("expected total 0, got %v", quote.Total)
	}
}

func TestComputeQuoteServiceBasePrices(t *testing.T) {
	services := []Service{
		{ID: "s1", Name: "Fotografía", BasePrice: 1000},
		{ID: "s2", Name: "Plano 2D", BasePrice: 2500},
		{ID: "s3", Name: "Gratis", BasePrice: 0},
	}

	quote := ComputeQuote(services, []string{"s1", "s2", "s3"}, nil, nil)
	if len(quote.Items) != 2 {
		t.Fatalf("expected 2 items (zero-priced service omitted), got %+v", quote.Items)
	}
	if quote.Items[0].Label != "Fotografía" || quote.Items[0].Amount != 1000 || quote.Items[0].Category != LineService {
		t.Fatalf("unexpected first item %+v", quote.Items[0])
	}
	if quote.Items[1].Label != "Plano 2D" || quote.Items[1].Amount != 2500 {
		t.Fatalf("unexpected second item %+v", quote.Items[1])
	}
	if quote.Total != 3500 {
		t.Fatalf("expected total 3500, got %v", quote.Total)
	}
}

func TestComputeQuoteServiceOrderFollowsSelection(t *testing.T) {
	services := []Service{
		{ID: "s1", Name: "A", BasePrice: 100},
		{ID: "s2", Name: "B", BasePrice: 200},
	}
	quote := ComputeQuote(services, []string{"s2", "s1"}, nil, nil)
	if quote.Items[0].Label != "B" || quote.Items[1].Label != "A" {
		t.Fatalf("expected selection order preserved, got %+v", quote.Items)
	}
}

func TestComputeQuoteOptionModifier(t *testing.T) {
	questions := []Question{
		{
			ID:        "q1",
			Text:      "Tipo de entrega",
			InputKind: InputRadio,
			Options: []Option{
				{ID: "o0", Label: "Estándar", PriceModifier: 0},
				{ID: "o1", Label: "Premium", PriceModifier: 1500},
			},
		},
	}
	responses := []QuestionResponse{{QuestionID: "q1", OptionID: "o1"}}

	quote := ComputeQuote(nil, nil, questions, responses)
	if len(quote.Items) != 1 {
		t.Fatalf("expected exactly one item, got %+v", quote.Items)
	}
	item := quote.Items[0]
	if item.Category != LineOption || item.Amount != 1500 {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Label != "Tipo de entrega: Premium" {
		t.Fatalf("unexpected label %q", item.Label)
	}
}

func TestComputeQuoteZeroModifierOptionOmitted(t *testing.T) {
	questions := []Question{
		{
			ID:        "q1",
			Text:      "Tipo de entrega",
			InputKind: InputRadio,
			Options:   []Option{{ID: "o0", Label: "Estándar", PriceModifier: 0}},
		},
	}
	quote := ComputeQuote(nil, nil, questions, []QuestionResponse{{QuestionID: "q1", OptionID: "o0"}})
	if len(quote.Items) != 0 {
		t.Fatalf("expected no items for zero modifier, got %+v", quote.Items)
	}
}

func TestComputeQuoteOptionFirstMatchWins(t *testing.T) {
	// The same option ID appearing in two questions is matched in question
	// order and the search stops at the first hit.
	questions := []Question{
		{ID: "q1", Text: "Primera", InputKind: InputSelect, Options: []Option{{ID: "o1", Label: "X", PriceModifier: 100}}},
		{ID: "q2", Text: "Segunda", InputKind: InputSelect, Options: []Option{{ID: "o1", Label: "X", PriceModifier: 900}}},
	}
	quote := ComputeQuote(nil, nil, questions, []QuestionResponse{{QuestionID: "q2", OptionID: "o1"}})
	if len(quote.Items) != 1 || quote.Items[0].Amount != 100 || quote.Items[0].Label != "Primera: X" {
		t.Fatalf("expected first match across questions to win, got %+v", quote.Items)
	}
}

func TestComputeQuoteOptionSearchSkipsZeroModifierMatches(t *testing.T) {
	// A zero-modifier hit does not end the search; a later question's
	// paying option with the same ID still prices.
	questions := []Question{
		{ID: "q1", Text: "Primera", InputKind: InputSelect, Options: []Option{{ID: "o1", Label: "X", PriceModifier: 0}}},
		{ID: "q2", Text: "Segunda", InputKind: InputSelect, Options: []Option{{ID: "o1", Label: "X", PriceModifier: 900}}},
	}
	quote := ComputeQuote(nil, nil, questions, []QuestionResponse{{QuestionID: "q1", OptionID: "o1"}})
	if len(quote.Items) != 1 || quote.Items[0].Amount != 900 || quote.Items[0].Label != "Segunda: X" {
		t.Fatalf("expected zero-modifier match skipped, got %+v", quote.Items)
	}
}

func TestComputeQuoteTieredCeilingSteps(t *testing.T) {
	questions := []Question{
		{
			ID:        "q1",
			Text:      "m2",
			InputKind: InputNumber,
			Pricing:   &TieredPricing{BaseUnits: 50, StepSize: 25, StepPrice: 500},
		},
	}

	cases := []struct {
		value  string
		amount float64
		items  int
	}{
		{"50", 0, 0},    // exactly the allowance: no charge
		{"51", 500, 1},  // 1 extra unit rounds up to a full step
		{"75", 500, 1},  // 25 extra units = exactly 1 step
		{"76", 1000, 2}, // 26 extra units = 2 steps
	}
	for _, tc := range cases {
		quote := ComputeQuote(nil, nil, questions, []QuestionResponse{{QuestionID: "q1", TextValue: tc.value}})
		if len(quote.Items) != tc.items {
			t.Fatalf("value %s: expected %d items, got %+v", tc.value, tc.items, quote.Items)
		}
		if quote.Total != tc.amount {
			t.Fatalf("value %s: expected amount %v, got %v", tc.value, tc.amount, quote.Total)
		}
		if tc.items == 1 && quote.Items[0].Category != LineTieredAddon {
			t.Fatalf("value %s: expected tiered-addon category, got %+v", tc.value, quote.Items[0])
		}
	}
}

func TestComputeQuoteTieredUsesUnroundedExcess(t *testing.T) {
	questions := []Question{
		{
			ID:        "q1",
			Text:      "m2",
			InputKind: InputNumber,
			Pricing:   &TieredPricing{BaseUnits: 50, StepSize: 25, StepPrice: 500},
		},
	}
	quote := ComputeQuote(nil, nil, questions, []QuestionResponse{{QuestionID: "q1", TextValue: "75.5"}})
	// 25.5 extra units: 2 steps, charged on the precise excess.
	if quote.Total != 1000 {
		t.Fatalf("expected 1000 for fractional excess, got %v", quote.Total)
	}
	if quote.Items[0].Label != "m2 (+25.5m² extras)" {
		t.Fatalf("unexpected label %q", quote.Items[0].Label)
	}
}

func TestComputeQuoteMalformedNumberSkipped(t *testing.T) {
	questions := []Question{
		{
			ID:        "q1",
			Text:      "m2",
			InputKind: InputNumber,
			Pricing:   &TieredPricing{BaseUnits: 50, StepSize: 25, StepPrice: 500},
		},
	}
	quote := ComputeQuote(nil, nil, questions, []QuestionResponse{{QuestionID: "q1", TextValue: "cien"}})
	if len(quote.Items) != 0 || quote.Total != 0 {
		t.Fatalf("expected malformed number to add no charge, got %+v", quote)
	}
}

func TestComputeQuoteTieredSkippedWithoutConfig(t *testing.T) {
	// A NUMBER question without tier parameters, and a TEXT question with a
	// numeric-looking answer, both price to nothing.
	questions := []Question{
		{ID: "q1", Text: "m2", InputKind: InputNumber},
		{ID: "q2", Text: "Comentarios", InputKind: InputText},
	}
	responses := []QuestionResponse{
		{QuestionID: "q1", TextValue: "500"},
		{QuestionID: "q2", TextValue: "1000"},
	}
	quote := ComputeQuote(nil, nil, questions, responses)
	if len(quote.Items) != 0 {
		t.Fatalf("expected no items without tier config, got %+v", quote.Items)
	}
}

func TestComputeQuoteDanglingReferencesSkipped(t *testing.T) {
	questions := []Question{
		{ID: "q1", Text: "Entrega", InputKind: InputRadio, Options: []Option{{ID: "o1", Label: "X", PriceModifier: 100}}},
	}
	responses := []QuestionResponse{
		{QuestionID: "q-gone", OptionID: "o-gone"},
		{QuestionID: "q-gone-2", TextValue: "120"},
	}
	quote := ComputeQuote(nil, nil, questions, responses)
	if len(quote.Items) != 0 || quote.Total != 0 {
		t.Fatalf("expected stale responses to be skipped, got %+v", quote)
	}
}

func TestComputeQuoteIdempotent(t *testing.T) {
	services := []Service{{ID: "s1", Name: "Fotografía", BasePrice: 8000}}
	questions := []Question{
		{
			ID:        "q1",
			Text:      "m2",
			InputKind: InputNumber,
			Pricing:   &TieredPricing{BaseUnits: 80, StepSize: 20, StepPrice: 1000},
		},
	}
	responses := []QuestionResponse{{QuestionID: "q1", TextValue: "130"}}

	first := ComputeQuote(services, []string{"s1"}, questions, responses)
	second := ComputeQuote(services, []string{"s1"}, questions, responses)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical outputs, got %+v then %+v", first, second)
	}
}

func TestComputeQuoteEndToEnd(t *testing.T) {
	services := []Service{{ID: "s1", Name: "Fotografía", BasePrice: 8000}}
	questions := []Question{
		{
			ID:        "q1",
			Text:      "m2",
			InputKind: InputNumber,
			Pricing:   &TieredPricing{BaseUnits: 80, StepSize: 20, StepPrice: 1000},
		},
	}
	responses := []QuestionResponse{{QuestionID: "q1", TextValue: "130"}}

	quote := ComputeQuote(services, []string{"s1"}, questions, responses)
	if len(quote.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", quote.Items)
	}
	want := []PriceLineItem{
		{Label: "Fotografía", Amount: 8000, Category: LineService},
		{Label: "m2 (+50m² extras)", Amount: 3000, Category: LineTieredAddon},
	}
	if !reflect.DeepEqual(quote.Items, want) {
		t.Fatalf("unexpected items %+v, want %+v", quote.Items, want)
	}
	if quote.Total != 11000 {
		t.Fatalf("expected total 11000, got %v", quote.Total)
	}
}
