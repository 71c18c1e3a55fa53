package domain

import (
	"math"
	"strconv"
)

// LineCategory tags a price line item by its origin.
type LineCategory string

const (
	LineService     LineCategory = "service"
	LineOption      LineCategory = "option"
	LineTieredAddon LineCategory = "tiered-addon"
)

// PriceLineItem is one priced entry in the computed breakdown.
type PriceLineItem struct {
	Label    string       `json:"label"`
	Amount   float64      `json:"amount"`
	Category LineCategory `json:"category"`
}

// Quote is the itemized price breakdown for the current draft state.
type Quote struct {
	Items []PriceLineItem `json:"items"`
	Total float64         `json:"total"`
}

// ComputeQuote derives the line-itemized price breakdown from the selected
// services, the question set, and the collected responses. It is a pure
// function: it never fails, never mutates its inputs, and emits items in a
// fixed order (service base prices first, then one pass over the responses
// in collection order).
//
// Unresolvable references and unparsable numeric values produce no line item
// rather than an error; stale responses for questions outside the current
// question set simply find no match.
func ComputeQuote(services []Service, selectedServiceIDs []string, questions []Question, responses []QuestionResponse) Quote {
	items := []PriceLineItem{}

	for _, serviceID := range selectedServiceIDs {
		for _, service := range services {
			if service.ID != serviceID {
				continue
			}
			if service.BasePrice > 0 {
				items = append(items, PriceLineItem{
					Label:    service.Name,
					Amount:   service.BasePrice,
					Category: LineService,
				})
			}
			break
		}
	}

	for _, response := range responses {
		if response.OptionID != "" {
			// The option is searched across every question's options; the
			// first match wins and ends the search for this response.
			if item, ok := optionItem(questions, response.OptionID); ok {
				items = append(items, item)
			}
		}

		if response.TextValue != "" {
			if item, ok := tieredItem(questions, response); ok {
				items = append(items, item)
			}
		}
	}

	total := 0.0
	for _, item := range items {
		total += item.Amount
	}
	return Quote{Items: items, Total: total}
}

func optionItem(questions []Question, optionID string) (PriceLineItem, bool) {
	for _, question := range questions {
		for _, option := range question.Options {
			if option.ID != optionID {
				continue
			}
			if option.PriceModifier > 0 {
				return PriceLineItem{
					Label:    question.Text + ": " + option.Label,
					Amount:   option.PriceModifier,
					Category: LineOption,
				}, true
			}
			// A zero-modifier match ends the lookup within this question
			// only; the remaining questions are still searched.
			break
		}
	}
	return PriceLineItem{}, false
}

// tieredItem charges NUMBER answers above the included allowance in full
// steps: any fractional excess over a step boundary counts as a whole step.
func tieredItem(questions []Question, response QuestionResponse) (PriceLineItem, bool) {
	var question *Question
	for i := range questions {
		if questions[i].ID == response.QuestionID {
			question = &questions[i]
			break
		}
	}
	if question == nil || question.InputKind != InputNumber || question.Pricing == nil {
		return PriceLineItem{}, false
	}

	value, err := strconv.ParseFloat(response.TextValue, 64)
	if err != nil || math.IsNaN(value) || value <= question.Pricing.BaseUnits {
		return PriceLineItem{}, false
	}

	extraUnits := value - question.Pricing.BaseUnits
	steps := math.Ceil(extraUnits / question.Pricing.StepSize)
	extraPrice := steps * question.Pricing.StepPrice
	if extraPrice <= 0 {
		return PriceLineItem{}, false
	}
	return PriceLineItem{
		Label:    question.Text + " (+" + formatUnits(extraUnits) + "m² extras)",
		Amount:   extraPrice,
		Category: LineTieredAddon,
	}, true
}

// formatUnits renders the excess for the label; display formatting only, the
// charged amount always uses the precise excess.
func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
