package domain

import "sort"

// Visible reports whether a question should be presented given the collected
// responses. Questions without a dependency are always visible; a question
// depending on an option is visible only while some response selects that
// option. Dangling option references therefore resolve to hidden, never to
// an error.
func Visible(question Question, responses []QuestionResponse) bool {
	if question.DependsOnOptionID == "" {
		return true
	}
	for _, response := range responses {
		if response.OptionID == question.DependsOnOptionID {
			return true
		}
	}
	return false
}

// QuestionsForServices returns the questions relevant to a selection: global
// questions plus those owned by one of the selected services, sorted for
// display (section, then display order, both stable).
func QuestionsForServices(questions []Question, serviceIDs []string) []Question {
	selected := make(map[string]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		selected[id] = struct{}{}
	}

	relevant := make([]Question, 0, len(questions))
	for _, question := range questions {
		if question.ServiceID == "" {
			relevant = append(relevant, question)
			continue
		}
		if _, ok := selected[question.ServiceID]; ok {
			relevant = append(relevant, question)
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		if relevant[i].DisplaySection != relevant[j].DisplaySection {
			return relevant[i].DisplaySection < relevant[j].DisplaySection
		}
		return relevant[i].DisplayOrder < relevant[j].DisplayOrder
	})
	return relevant
}

// ResponsesForService filters responses for the order record of a single
// service: responses to global questions are always kept, responses to
// service-scoped questions only when owned by that service. A response whose
// question is no longer in the set is kept, matching the submission behavior
// of the order form this service backs.
func ResponsesForService(serviceID string, questions []Question, responses []QuestionResponse) []QuestionResponse {
	filtered := make([]QuestionResponse, 0, len(responses))
	for _, response := range responses {
		var question *Question
		for i := range questions {
			if questions[i].ID == response.QuestionID {
				question = &questions[i]
				break
			}
		}
		if question == nil || question.ServiceID == "" || question.ServiceID == serviceID {
			filtered = append(filtered, response)
		}
	}
	return filtered
}
