package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubmitStore abstracts persistence operations required by ResponseService.
type SubmitStore interface {
	GetCampaign(id string) (*Campaign, error)
	AddResponse(r *Response) error
}

// SubmitRequest transports the sanitized handler input into the service layer.
// RawAnswers is keyed by question id; values are decoded against the declared
// question type.
type SubmitRequest struct {
	CampaignID     string
	RespondentName string
	Contact        string
	RawAnswers     map[string]json.RawMessage
}

// SubmitResult collects the data needed to emit the HTTP response, including
// the redirect decision made on behalf of the survey page.
type SubmitResult struct {
	ResponseID  string
	Score       *int
	Category    Category
	Redirect    bool
	RedirectURL string
}

var (
	// ErrCampaignNotFound is returned when a submission references a missing campaign.
	ErrCampaignNotFound = errors.New("campaign not found")
)

// ResponseService hosts the public survey submission workflow.
type ResponseService struct {
	store       SubmitStore
	now         func() time.Time
	idGenerator func() string
}

// NewResponseService constructs a service bound to the provided persistence interface.
func NewResponseService(store SubmitStore) *ResponseService {
	return &ResponseService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: defaultResponseID,
	}
}

func defaultResponseID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Submit validates one respondent's answers against the campaign's question
// schema, persists the response and returns the classification plus the
// redirect decision. Answers for unknown questions are dropped; answers that
// fail type validation reject the submission.
func (s *ResponseService) Submit(req SubmitRequest) (*SubmitResult, error) {
	if s.store == nil {
		return nil, errors.New("response service store is nil")
	}
	campaign, err := s.store.GetCampaign(req.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if strings.TrimSpace(req.RespondentName) == "" {
		return nil, NewInvalidError("respondent name required")
	}

	answers := make(map[string]Answer, len(req.RawAnswers))
	for _, q := range campaign.Questions {
		raw, ok := req.RawAnswers[q.ID]
		if !ok || len(raw) == 0 {
			continue
		}
		ans, err := decodeAnswer(q.Type, raw)
		if err != nil {
			return nil, NewInvalidError(fmt.Sprintf("question %s: %v", q.ID, err))
		}
		answers[q.ID] = ans
	}

	resp := &Response{
		ID:             s.idGenerator(),
		CampaignID:     campaign.ID,
		RespondentName: strings.TrimSpace(req.RespondentName),
		Contact:        strings.TrimSpace(req.Contact),
		Answers:        answers,
		SubmittedAt:    s.now(),
	}
	if err := s.store.AddResponse(resp); err != nil {
		return nil, err
	}

	score, category := Classify(resp, campaign)
	result := &SubmitResult{ResponseID: resp.ID, Score: score, Category: category}
	if campaign.RedirectEnabled && ShouldRedirect(campaign.RedirectRule, category) {
		if url := ReviewURL(campaign.GooglePlaceID); url != "" {
			result.Redirect = true
			result.RedirectURL = url
		}
	}
	return result, nil
}

// decodeAnswer validates one raw answer value against the declared question
// type and produces the tagged Answer stored with the response.
func decodeAnswer(qt QuestionType, raw json.RawMessage) (Answer, error) {
	switch qt {
	case QuestionNPS:
		return numericAnswer(qt, raw, 0, 10)
	case QuestionStars:
		return numericAnswer(qt, raw, 1, 5)
	case QuestionEmotion:
		return numericAnswer(qt, raw, 1, 3)
	case QuestionEmotionScale:
		return numericAnswer(qt, raw, 1, 5)
	case QuestionLikeDislike:
		var token string
		if err := json.Unmarshal(raw, &token); err != nil {
			return Answer{}, errors.New("expected \"like\" or \"dislike\"")
		}
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "like" && token != "dislike" {
			return Answer{}, errors.New("expected \"like\" or \"dislike\"")
		}
		return Answer{Type: qt, Token: token}, nil
	}
	return Answer{}, errors.New("unknown question type")
}

func numericAnswer(qt QuestionType, raw json.RawMessage, min, max int) (Answer, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		// tolerate numbers submitted as strings
		var sval string
		if err := json.Unmarshal(raw, &sval); err != nil {
			return Answer{}, errors.New("expected a number")
		}
		n, err := strconv.Atoi(strings.TrimSpace(sval))
		if err != nil {
			return Answer{}, errors.New("expected a number")
		}
		num = float64(n)
	}
	n := int(num)
	if float64(n) != num {
		return Answer{}, errors.New("expected an integer")
	}
	if n < min || n > max {
		return Answer{}, fmt.Errorf("value %d out of range [%d,%d]", n, min, max)
	}
	return Answer{Type: qt, Value: &n}, nil
}
