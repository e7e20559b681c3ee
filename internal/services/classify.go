package services

// Category is the NPS band a respondent falls into, derived from the score of
// the campaign's main question. It is computed on demand, never stored.
type Category string

const (
	CategoryPromoter     Category = "Promoter"
	CategoryPassive      Category = "Passive"
	CategoryDetractor    Category = "Detractor"
	CategoryUnclassified Category = "Unclassified"
)

// MainQuestion returns the campaign's designated scoring question.
// When several questions carry the main flag the first one in declared order
// wins; with none, nil is returned and the respondent stays unclassified.
func MainQuestion(c *Campaign) *Question {
	if c == nil {
		return nil
	}
	for _, q := range c.Questions {
		if q != nil && q.IsMain {
			return q
		}
	}
	return nil
}

// CategoryForScore maps a main-question score to its NPS band.
// Scores outside [0,10] are not rejected here; range validation belongs to
// the submission layer.
func CategoryForScore(score int) Category {
	switch {
	case score >= 9:
		return CategoryPromoter
	case score >= 7:
		return CategoryPassive
	default:
		return CategoryDetractor
	}
}

// Classify resolves the main-question score for one response and maps it to a
// category. A missing main question or a missing/non-numeric answer yields
// (nil, Unclassified); classification never errors.
func Classify(resp *Response, campaign *Campaign) (*int, Category) {
	main := MainQuestion(campaign)
	if main == nil || resp == nil {
		return nil, CategoryUnclassified
	}
	ans, ok := resp.Answers[main.ID]
	if !ok {
		return nil, CategoryUnclassified
	}
	score, ok := ans.Numeric()
	if !ok {
		return nil, CategoryUnclassified
	}
	return &score, CategoryForScore(score)
}
