package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/pulsohq/pulso/internal/services"
)

// Store is the persistence surface the HTTP layer wires into the services.
// It is the union of the per-service store interfaces, so one backend can
// serve every service.
type Store interface {
	InsertCampaign(c *services.Campaign) (*services.Campaign, error)
	GetCampaign(id string) (*services.Campaign, error)
	UpdateCampaign(c *services.Campaign) error
	DeleteCampaign(id string) error
	ListCampaignsByTenant(tenantID string) ([]*services.Campaign, error)
	ReplaceQuestions(campaignID string, questions []*services.Question) error

	AddResponse(r *services.Response) error
	ListResponsesByCampaign(campaignID string) ([]*services.Response, error)

	AddTenant(t *services.Tenant) error
	AddUser(u *services.User) error
	FindUserByEmail(email string) (*services.User, error)
}

type memoryStore struct {
	mu           sync.RWMutex
	campaigns    map[string]*services.Campaign
	responses    []*services.Response
	tenants      map[string]*services.Tenant
	usersByEmail map[string]*services.User
}

// NewMemoryStore builds an empty in-memory Store, used in tests and as a
// fallback when no SQLite path is configured.
func NewMemoryStore() Store {
	return &memoryStore{
		campaigns:    map[string]*services.Campaign{},
		responses:    []*services.Response{},
		tenants:      map[string]*services.Tenant{},
		usersByEmail: map[string]*services.User{},
	}
}

func (s *memoryStore) InsertCampaign(c *services.Campaign) (*services.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneCampaign(c)
	s.campaigns[cp.ID] = cp
	return cloneCampaign(cp), nil
}

func (s *memoryStore) GetCampaign(id string) (*services.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return cloneCampaign(c), nil
}

func (s *memoryStore) UpdateCampaign(c *services.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.campaigns[c.ID]
	if !ok {
		return services.NewNotFoundError("campaign not found")
	}
	cp := cloneCampaign(c)
	cp.Questions = stored.Questions // question set managed via ReplaceQuestions
	s.campaigns[cp.ID] = cp
	return nil
}

func (s *memoryStore) DeleteCampaign(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.campaigns, id)
	nr := make([]*services.Response, 0, len(s.responses))
	for _, r := range s.responses {
		if r.CampaignID != id {
			nr = append(nr, r)
		}
	}
	s.responses = nr
	return nil
}

func (s *memoryStore) ListCampaignsByTenant(tenantID string) ([]*services.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Campaign{}
	for _, c := range s.campaigns {
		if c.TenantID == tenantID {
			out = append(out, cloneCampaign(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) ReplaceQuestions(campaignID string, questions []*services.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return services.NewNotFoundError("campaign not found")
	}
	qs := make([]*services.Question, 0, len(questions))
	for _, q := range questions {
		cp := *q
		qs = append(qs, &cp)
	}
	c.Questions = qs
	return nil
}

func (s *memoryStore) AddResponse(r *services.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, cloneResponse(r))
	return nil
}

func (s *memoryStore) ListResponsesByCampaign(campaignID string) ([]*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Response{}
	for _, r := range s.responses {
		if r.CampaignID == campaignID {
			out = append(out, cloneResponse(r))
		}
	}
	return out, nil
}

func (s *memoryStore) AddTenant(t *services.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tenants[t.ID] = &cp
	return nil
}

func (s *memoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.usersByEmail[strings.ToLower(u.Email)] = &cp
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// Callers get value snapshots so the aggregation core never sees shared
// mutable state.
func cloneCampaign(c *services.Campaign) *services.Campaign {
	cp := *c
	if c.Questions != nil {
		cp.Questions = make([]*services.Question, 0, len(c.Questions))
		for _, q := range c.Questions {
			qc := *q
			cp.Questions = append(cp.Questions, &qc)
		}
	}
	return &cp
}

func cloneResponse(r *services.Response) *services.Response {
	cp := *r
	if r.Answers != nil {
		cp.Answers = make(map[string]services.Answer, len(r.Answers))
		for k, v := range r.Answers {
			cp.Answers[k] = v
		}
	}
	return &cp
}
