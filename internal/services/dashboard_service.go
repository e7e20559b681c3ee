package services

// DashboardStore abstracts persistence operations required by DashboardService.
type DashboardStore interface {
	GetCampaign(id string) (*Campaign, error)
	ListCampaignsByTenant(tenantID string) ([]*Campaign, error)
	ListResponsesByCampaign(campaignID string) ([]*Response, error)
}

type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Overview aggregates across every campaign owned by the tenant.
func (s *DashboardService) Overview(tenantID string) (*DashboardMetrics, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	campaigns, err := s.store.ListCampaignsByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	responses := []*Response{}
	for _, c := range campaigns {
		rs, err := s.store.ListResponsesByCampaign(c.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, rs...)
	}
	return Aggregate(responses, campaigns), nil
}

// Campaign aggregates a single campaign after checking tenant ownership.
func (s *DashboardService) Campaign(tenantID, campaignID string) (*DashboardMetrics, error) {
	c, err := s.store.GetCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NewNotFoundError("campaign not found")
	}
	if c.TenantID != tenantID {
		return nil, NewForbiddenError("forbidden")
	}
	responses, err := s.store.ListResponsesByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	return CampaignMetrics(campaignID, responses, c), nil
}
