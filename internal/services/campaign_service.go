package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CampaignStore abstracts persistence operations required by CampaignService.
type CampaignStore interface {
	InsertCampaign(c *Campaign) (*Campaign, error)
	GetCampaign(id string) (*Campaign, error)
	UpdateCampaign(c *Campaign) error
	DeleteCampaign(id string) error
	ListCampaignsByTenant(tenantID string) ([]*Campaign, error)
	ReplaceQuestions(campaignID string, questions []*Question) error
}

type CampaignService struct {
	store CampaignStore
	now   func() time.Time
}

func NewCampaignService(store CampaignStore) *CampaignService {
	return &CampaignService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func shortID(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > 0 && n < len(id) {
		return id[:n]
	}
	return id
}

// Create registers a new campaign for the tenant. Defaults: NPS main metric,
// redirect disabled with rule "promoters" preselected.
func (s *CampaignService) Create(tenantID, name string) (*Campaign, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewInvalidError("name required")
	}
	c := &Campaign{
		ID:           shortID(8),
		TenantID:     tenantID,
		Name:         name,
		MainMetric:   "NPS",
		RedirectRule: RedirectPromoters,
		CreatedAt:    s.now(),
	}
	return s.store.InsertCampaign(c)
}

func (s *CampaignService) Get(tenantID, id string) (*Campaign, error) {
	c, err := s.owned(tenantID, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) List(tenantID string) ([]*Campaign, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	return s.store.ListCampaignsByTenant(tenantID)
}

// UpdateSettings replaces the campaign's editable settings. The question set
// is managed separately through ReplaceQuestions.
func (s *CampaignService) UpdateSettings(tenantID string, upd *Campaign) (*Campaign, error) {
	if upd == nil {
		return nil, NewInvalidError("campaign required")
	}
	c, err := s.owned(tenantID, upd.ID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(upd.Name); name != "" {
		c.Name = name
	}
	if upd.MainMetric != "" {
		c.MainMetric = upd.MainMetric
	}
	c.RedirectEnabled = upd.RedirectEnabled
	if upd.RedirectRule != "" {
		switch upd.RedirectRule {
		case RedirectAll, RedirectPromoters, RedirectPassives, RedirectDetractors:
			c.RedirectRule = upd.RedirectRule
		default:
			return nil, NewInvalidError("unknown redirect rule")
		}
	}
	c.GooglePlaceID = strings.TrimSpace(upd.GooglePlaceID)
	c.FeedbackEnabled = upd.FeedbackEnabled
	c.FeedbackText = upd.FeedbackText
	if err := s.store.UpdateCampaign(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Delete(tenantID, id string) error {
	if _, err := s.owned(tenantID, id); err != nil {
		return err
	}
	return s.store.DeleteCampaign(id)
}

// ReplaceQuestions swaps the campaign's question set. Questions are
// renumbered sequentially in the submitted order and the main flag is
// normalized so the first flagged question wins.
func (s *CampaignService) ReplaceQuestions(tenantID, campaignID string, questions []*Question) ([]*Question, error) {
	if _, err := s.owned(tenantID, campaignID); err != nil {
		return nil, err
	}
	normalized := make([]*Question, 0, len(questions))
	mainSeen := false
	for i, q := range questions {
		if q == nil {
			continue
		}
		if !ValidQuestionType(q.Type) {
			return nil, NewInvalidError("unknown question type: " + string(q.Type))
		}
		if strings.TrimSpace(q.Text) == "" {
			return nil, NewInvalidError("question text required")
		}
		nq := *q
		if nq.ID == "" {
			nq.ID = shortID(8)
		}
		nq.CampaignID = campaignID
		nq.Order = i + 1
		if nq.IsMain {
			if mainSeen {
				nq.IsMain = false
			}
			mainSeen = true
		}
		normalized = append(normalized, &nq)
	}
	if err := s.store.ReplaceQuestions(campaignID, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *CampaignService) owned(tenantID, id string) (*Campaign, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	c, err := s.store.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NewNotFoundError("campaign not found")
	}
	if c.TenantID != tenantID {
		return nil, NewForbiddenError("forbidden")
	}
	return c, nil
}
