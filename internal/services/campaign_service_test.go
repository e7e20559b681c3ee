package services

import (
	"testing"
)

type stubCampaignStore struct {
	campaigns map[string]*Campaign
}

func newStubCampaignStore() *stubCampaignStore {
	return &stubCampaignStore{campaigns: map[string]*Campaign{}}
}

func (s *stubCampaignStore) InsertCampaign(c *Campaign) (*Campaign, error) {
	s.campaigns[c.ID] = c
	return c, nil
}

func (s *stubCampaignStore) GetCampaign(id string) (*Campaign, error) {
	return s.campaigns[id], nil
}

func (s *stubCampaignStore) UpdateCampaign(c *Campaign) error {
	s.campaigns[c.ID] = c
	return nil
}

func (s *stubCampaignStore) DeleteCampaign(id string) error {
	delete(s.campaigns, id)
	return nil
}

func (s *stubCampaignStore) ListCampaignsByTenant(tenantID string) ([]*Campaign, error) {
	out := []*Campaign{}
	for _, c := range s.campaigns {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCampaignStore) ReplaceQuestions(campaignID string, questions []*Question) error {
	c, ok := s.campaigns[campaignID]
	if !ok {
		return NewNotFoundError("campaign not found")
	}
	c.Questions = questions
	return nil
}

func TestCreateCampaignDefaults(t *testing.T) {
	svc := NewCampaignService(newStubCampaignStore())
	c, err := svc.Create("t1", "My Campaign")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.ID == "" || c.TenantID != "t1" {
		t.Fatalf("unexpected campaign: %+v", c)
	}
	if c.MainMetric != "NPS" || c.RedirectRule != RedirectPromoters || c.RedirectEnabled {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestCreateCampaignRequiresName(t *testing.T) {
	svc := NewCampaignService(newStubCampaignStore())
	if _, err := svc.Create("t1", "  "); err == nil {
		t.Fatalf("expected invalid error")
	}
}

func TestReplaceQuestionsNormalizes(t *testing.T) {
	store := newStubCampaignStore()
	svc := NewCampaignService(store)
	c, _ := svc.Create("t1", "My Campaign")

	qs, err := svc.ReplaceQuestions("t1", c.ID, []*Question{
		{Type: QuestionLikeDislike, Text: "Wait ok?", Order: 99},
		{Type: QuestionNPS, Text: "Recommend us?", IsMain: true},
		{Type: QuestionStars, Text: "Rate us", IsMain: true},
	})
	if err != nil {
		t.Fatalf("ReplaceQuestions error: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.Order != i+1 {
			t.Fatalf("question %d: expected order %d, got %d", i, i+1, q.Order)
		}
		if q.ID == "" || q.CampaignID != c.ID {
			t.Fatalf("question %d not normalized: %+v", i, q)
		}
	}
	if !qs[1].IsMain || qs[2].IsMain {
		t.Fatalf("expected only the first flagged question to stay main")
	}
}

func TestReplaceQuestionsRejectsUnknownType(t *testing.T) {
	store := newStubCampaignStore()
	svc := NewCampaignService(store)
	c, _ := svc.Create("t1", "My Campaign")
	_, err := svc.ReplaceQuestions("t1", c.ID, []*Question{{Type: "slider", Text: "?"}})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	store := newStubCampaignStore()
	svc := NewCampaignService(store)
	c, _ := svc.Create("t1", "My Campaign")

	upd, err := svc.UpdateSettings("t1", &Campaign{
		ID:              c.ID,
		RedirectEnabled: true,
		RedirectRule:    RedirectAll,
		GooglePlaceID:   "place1",
	})
	if err != nil {
		t.Fatalf("UpdateSettings error: %v", err)
	}
	if !upd.RedirectEnabled || upd.RedirectRule != RedirectAll || upd.GooglePlaceID != "place1" {
		t.Fatalf("settings not applied: %+v", upd)
	}
	if upd.Name != "My Campaign" {
		t.Fatalf("name should be preserved when omitted")
	}
}

func TestUpdateSettingsRejectsUnknownRule(t *testing.T) {
	store := newStubCampaignStore()
	svc := NewCampaignService(store)
	c, _ := svc.Create("t1", "My Campaign")
	_, err := svc.UpdateSettings("t1", &Campaign{ID: c.ID, RedirectRule: "everyone"})
	if err == nil {
		t.Fatalf("expected invalid error")
	}
}

func TestCampaignTenantIsolation(t *testing.T) {
	store := newStubCampaignStore()
	svc := NewCampaignService(store)
	c, _ := svc.Create("t1", "My Campaign")

	if _, err := svc.Get("t2", c.ID); err == nil {
		t.Fatalf("expected forbidden for foreign tenant")
	}
	if err := svc.Delete("t2", c.ID); err == nil {
		t.Fatalf("expected forbidden delete for foreign tenant")
	}
	if _, err := svc.Get("", c.ID); err == nil {
		t.Fatalf("expected forbidden for empty tenant")
	}
}

func TestSuggestQuestions(t *testing.T) {
	if len(Niches()) == 0 {
		t.Fatalf("expected niches")
	}
	qs := SuggestQuestions("restaurant")
	if len(qs) == 0 {
		t.Fatalf("expected restaurant suggestions")
	}
	mains := 0
	for _, q := range qs {
		if !ValidQuestionType(q.Type) {
			t.Fatalf("suggestion with invalid type: %+v", q)
		}
		if q.IsMain {
			mains++
		}
	}
	if mains != 1 {
		t.Fatalf("expected exactly one main suggestion, got %d", mains)
	}
	if SuggestQuestions("nonexistent") != nil {
		t.Fatalf("expected nil for unknown niche")
	}
}
