package services

// ShouldRedirect decides whether a respondent with the given category is sent
// to the review site under the campaign's redirect rule. Unclassified
// respondents are never redirected.
func ShouldRedirect(rule RedirectRule, category Category) bool {
	switch category {
	case CategoryPromoter, CategoryPassive, CategoryDetractor:
	default:
		return false
	}
	switch rule {
	case RedirectAll:
		return true
	case RedirectPromoters:
		return category == CategoryPromoter
	case RedirectPassives:
		return category == CategoryPassive
	case RedirectDetractors:
		return category == CategoryDetractor
	}
	return false
}

// ReviewURL builds the Google review link for a place. Empty place id means
// there is nowhere to redirect to.
func ReviewURL(placeID string) string {
	if placeID == "" {
		return ""
	}
	return "https://search.google.com/local/writereview?placeid=" + placeID
}
