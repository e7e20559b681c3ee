package services

// Niche identifies a business segment with a ready-made question template.
type Niche struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SuggestedQuestion is a question template; it becomes a real Question once
// the operator adds it to a campaign.
type SuggestedQuestion struct {
	Type   QuestionType `json:"type"`
	Text   string       `json:"text"`
	IsMain bool         `json:"is_main,omitempty"`
}

// Niches lists the segments suggestions exist for, in display order.
func Niches() []Niche {
	return []Niche{
		{ID: "restaurant", Name: "Restaurant / Food Service"},
		{ID: "ecommerce", Name: "E-commerce / Online Store"},
		{ID: "health", Name: "Health / Clinic / Hospital"},
		{ID: "education", Name: "Education / School / Course"},
		{ID: "technology", Name: "Technology / Software / SaaS"},
		{ID: "beauty", Name: "Beauty / Aesthetics / Salon"},
		{ID: "fitness", Name: "Gym / Fitness / Sports"},
		{ID: "hospitality", Name: "Hotel / Inn / Lodging"},
	}
}

var questionSuggestions = map[string][]SuggestedQuestion{
	"restaurant": {
		{Type: QuestionNPS, Text: "Would you recommend our restaurant to a friend or colleague?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the quality of the food?"},
		{Type: QuestionStars, Text: "How would you rate the service from our team?"},
		{Type: QuestionEmotionScale, Text: "Is the restaurant atmosphere pleasant?"},
		{Type: QuestionLikeDislike, Text: "Was the waiting time acceptable?"},
	},
	"ecommerce": {
		{Type: QuestionNPS, Text: "Would you recommend our online store to a friend or colleague?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the quality of the products?"},
		{Type: QuestionEmotionScale, Text: "Is the website easy to use and navigate?"},
		{Type: QuestionStars, Text: "How would you rate the delivery time?"},
		{Type: QuestionLikeDislike, Text: "Did checkout work smoothly?"},
	},
	"health": {
		{Type: QuestionNPS, Text: "Would you recommend our clinic to a friend or family member?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the care from our professionals?"},
		{Type: QuestionEmotionScale, Text: "Did you feel welcomed during your visit?"},
		{Type: QuestionLikeDislike, Text: "Was scheduling your appointment easy?"},
	},
	"education": {
		{Type: QuestionNPS, Text: "Would you recommend our courses to a friend or colleague?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the quality of the teaching?"},
		{Type: QuestionEmotionScale, Text: "Is the learning material clear and helpful?"},
		{Type: QuestionLikeDislike, Text: "Does the course meet your expectations?"},
	},
	"technology": {
		{Type: QuestionNPS, Text: "Would you recommend our product to a friend or colleague?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the product's ease of use?"},
		{Type: QuestionEmotionScale, Text: "Does our support resolve your issues?"},
		{Type: QuestionLikeDislike, Text: "Is the product worth the price?"},
	},
	"beauty": {
		{Type: QuestionNPS, Text: "Would you recommend our salon to a friend?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the result of your treatment?"},
		{Type: QuestionEmotionScale, Text: "Did you feel comfortable during your visit?"},
		{Type: QuestionLikeDislike, Text: "Was the waiting time acceptable?"},
	},
	"fitness": {
		{Type: QuestionNPS, Text: "Would you recommend our gym to a friend or colleague?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the equipment and facilities?"},
		{Type: QuestionEmotionScale, Text: "Are the instructors attentive and helpful?"},
		{Type: QuestionLikeDislike, Text: "Are the opening hours convenient?"},
	},
	"hospitality": {
		{Type: QuestionNPS, Text: "Would you recommend our hotel to a friend or colleague?", IsMain: true},
		{Type: QuestionStars, Text: "How would you rate the cleanliness of your room?"},
		{Type: QuestionEmotionScale, Text: "Was the staff welcoming during your stay?"},
		{Type: QuestionLikeDislike, Text: "Was check-in quick and easy?"},
	},
}

// SuggestQuestions returns the question template for a niche, or nil when the
// niche is unknown.
func SuggestQuestions(niche string) []SuggestedQuestion {
	return questionSuggestions[niche]
}
