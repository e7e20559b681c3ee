package services

import "time"

// QuestionType enumerates the widget types a campaign question can use.
type QuestionType string

const (
	QuestionNPS          QuestionType = "nps"           // 0-10 recommendation scale
	QuestionStars        QuestionType = "stars"         // 1-5 star rating
	QuestionEmotion      QuestionType = "emotion"       // 3-point emotion picker
	QuestionEmotionScale QuestionType = "emotion_scale" // 5-point emotion scale
	QuestionLikeDislike  QuestionType = "like_dislike"  // binary like/dislike
)

// ValidQuestionType reports whether t is one of the supported widget types.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionNPS, QuestionStars, QuestionEmotion, QuestionEmotionScale, QuestionLikeDislike:
		return true
	}
	return false
}

// Question belongs to a campaign. At most one question per campaign should
// carry IsMain; the main question supplies the score used for classification.
type Question struct {
	ID         string       `json:"id"`
	CampaignID string       `json:"campaign_id,omitempty"`
	Type       QuestionType `json:"type"`
	Text       string       `json:"text"`
	Order      int          `json:"order"`
	IsMain     bool         `json:"is_main,omitempty"`
}

// RedirectRule selects which respondent categories are sent to the review site.
type RedirectRule string

const (
	RedirectAll        RedirectRule = "all"
	RedirectPromoters  RedirectRule = "promoters"
	RedirectPassives   RedirectRule = "passives"
	RedirectDetractors RedirectRule = "detractors"
)

// Campaign bundles a question schema, redirect rule and feedback settings.
type Campaign struct {
	ID              string       `json:"id"`
	TenantID        string       `json:"tenant_id,omitempty"`
	Name            string       `json:"name"`
	MainMetric      string       `json:"main_metric,omitempty"` // NPS, CSAT or CES; display only
	RedirectEnabled bool         `json:"redirect_enabled,omitempty"`
	RedirectRule    RedirectRule `json:"redirect_rule,omitempty"`
	GooglePlaceID   string       `json:"google_place_id,omitempty"`
	FeedbackEnabled bool         `json:"feedback_enabled,omitempty"`
	FeedbackText    string       `json:"feedback_text,omitempty"`
	Questions       []*Question  `json:"questions,omitempty"`
	CreatedAt       time.Time    `json:"created_at,omitempty"`
}

// Answer is one validated answer, tagged with the question type it was
// validated against. Scored types carry Value; like_dislike carries Token.
type Answer struct {
	Type  QuestionType `json:"type"`
	Value *int         `json:"value,omitempty"`
	Token string       `json:"token,omitempty"`
}

// Numeric returns the answer's score when the answer is a scored type.
func (a Answer) Numeric() (int, bool) {
	if a.Value == nil {
		return 0, false
	}
	switch a.Type {
	case QuestionNPS, QuestionStars, QuestionEmotion, QuestionEmotionScale:
		return *a.Value, true
	}
	return 0, false
}

// Response is one respondent's full submission to one campaign.
// Responses are append-only and never mutated after submission.
type Response struct {
	ID             string            `json:"id"`
	CampaignID     string            `json:"campaign_id"`
	RespondentName string            `json:"respondent_name"`
	Contact        string            `json:"contact,omitempty"`
	Answers        map[string]Answer `json:"answers"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

// Tenant is the account a set of operators and campaigns belong to.
type Tenant struct {
	ID   string
	Name string
}

// User is an operator account.
type User struct {
	ID        string
	Email     string
	PassHash  []byte
	TenantID  string
	CreatedAt time.Time
}
