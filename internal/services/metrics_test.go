package services

import (
	"math"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func responsesWithScores(campaignID string, scores []int) []*Response {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	out := make([]*Response, 0, len(scores))
	for i, s := range scores {
		r := npsResponse(campaignID, s)
		r.RespondentName = "Respondent " + strconv.Itoa(i+1)
		r.SubmittedAt = base.Add(time.Duration(i) * time.Minute)
		out = append(out, r)
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil, []*Campaign{npsCampaign("c1")})
	if m.NPS != 0 {
		t.Fatalf("expected NPS 0, got %d", m.NPS)
	}
	if len(m.NPSPercentage) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(m.NPSPercentage))
	}
	for _, share := range m.NPSPercentage {
		if share.Value != "0" {
			t.Fatalf("expected share value 0, got %q", share.Value)
		}
	}
	if len(m.NPSScores) != 11 {
		t.Fatalf("expected 11 histogram buckets, got %d", len(m.NPSScores))
	}
	for _, b := range m.NPSScores {
		if b.Count != 0 {
			t.Fatalf("expected empty histogram, bucket %s has %d", b.Score, b.Count)
		}
	}
	if len(m.LatestResponses) != 0 {
		t.Fatalf("expected empty feed")
	}
}

// Dashboard fixture: histogram {0:1,2:2,3:2,5:3,7:5,8:5,9:4,10:1}, 23
// classified responses, 5 promoters, 10 passives, 8 detractors, NPS -13.
func TestAggregateDashboardFixture(t *testing.T) {
	scores := []int{
		0,
		2, 2,
		3, 3,
		5, 5, 5,
		7, 7, 7, 7, 7,
		8, 8, 8, 8, 8,
		9, 9, 9, 9,
		10,
	}
	campaign := npsCampaign("c1")
	m := Aggregate(responsesWithScores("c1", scores), []*Campaign{campaign})

	if m.NPS != -13 {
		t.Fatalf("expected NPS -13, got %d", m.NPS)
	}
	wantCounts := map[string]int{"0": 1, "1": 0, "2": 2, "3": 2, "4": 0, "5": 3, "6": 0, "7": 5, "8": 5, "9": 4, "10": 1}
	histTotal := 0
	for i, b := range m.NPSScores {
		if b.Score != strconv.Itoa(i) {
			t.Fatalf("bucket %d has score label %q", i, b.Score)
		}
		if b.Count != wantCounts[b.Score] {
			t.Fatalf("bucket %s: expected %d, got %d", b.Score, wantCounts[b.Score], b.Count)
		}
		histTotal += b.Count
	}
	if histTotal != 23 {
		t.Fatalf("histogram total %d, expected 23", histTotal)
	}

	wantShares := []CategoryShare{
		{Category: "Promoters", Value: "21.74", Color: "#10b981"},
		{Category: "Passives", Value: "43.48", Color: "#f59e0b"},
		{Category: "Detractors", Value: "34.78", Color: "#ef4444"},
	}
	if !reflect.DeepEqual(m.NPSPercentage, wantShares) {
		t.Fatalf("unexpected shares: %+v", m.NPSPercentage)
	}

	sum := 0.0
	for _, share := range m.NPSPercentage {
		v, err := strconv.ParseFloat(share.Value, 64)
		if err != nil {
			t.Fatalf("share value %q: %v", share.Value, err)
		}
		sum += v
	}
	if math.Abs(sum-100) > 0.03 {
		t.Fatalf("shares sum to %f, expected ~100", sum)
	}
}

func TestAggregateSkipsUnresolvableCampaign(t *testing.T) {
	responses := responsesWithScores("ghost", []int{10, 10, 10})
	m := Aggregate(responses, []*Campaign{npsCampaign("c1")})
	if m.NPS != 0 {
		t.Fatalf("expected NPS 0 with no resolvable responses, got %d", m.NPS)
	}
	for _, share := range m.NPSPercentage {
		if share.Value != "0" {
			t.Fatalf("expected zero shares, got %q", share.Value)
		}
	}
	// the feed still shows the raw submissions, unclassified
	if len(m.LatestResponses) != 3 {
		t.Fatalf("expected 3 feed entries, got %d", len(m.LatestResponses))
	}
	for _, lr := range m.LatestResponses {
		if lr.Score != nil || lr.Category != "N/A" {
			t.Fatalf("expected N/A feed entry, got %+v", lr)
		}
	}
}

func TestAggregateUnclassifiedExcluded(t *testing.T) {
	campaign := npsCampaign("c1")
	noMain := &Campaign{ID: "c2", Questions: []*Question{{ID: "q1", Type: QuestionNPS, Order: 1}}}
	responses := responsesWithScores("c1", []int{9, 7})
	orphan := npsResponse("c2", 10)
	orphan.SubmittedAt = time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	responses = append(responses, orphan)

	m := Aggregate(responses, []*Campaign{campaign, noMain})
	histTotal := 0
	for _, b := range m.NPSScores {
		histTotal += b.Count
	}
	if histTotal != 2 {
		t.Fatalf("expected 2 classified responses in histogram, got %d", histTotal)
	}
	// 1 promoter, 1 passive: NPS = round(50 - 0) = 50
	if m.NPS != 50 {
		t.Fatalf("expected NPS 50, got %d", m.NPS)
	}
}

func TestAggregateLatestFeedOrdering(t *testing.T) {
	responses := responsesWithScores("c1", []int{0, 1, 2, 3, 4, 5, 6})
	m := Aggregate(responses, []*Campaign{npsCampaign("c1")})
	if len(m.LatestResponses) != 5 {
		t.Fatalf("expected 5 feed entries, got %d", len(m.LatestResponses))
	}
	// last 5 submissions, most recent first: scores 6,5,4,3,2
	for i, wantScore := range []int{6, 5, 4, 3, 2} {
		lr := m.LatestResponses[i]
		if lr.Score == nil || *lr.Score != wantScore {
			t.Fatalf("feed entry %d: expected score %d, got %v", i, wantScore, lr.Score)
		}
		if lr.Date != "01/08/2025" {
			t.Fatalf("feed entry %d: expected date 01/08/2025, got %s", i, lr.Date)
		}
	}
	if m.LatestResponses[0].Category != CategoryDetractor {
		t.Fatalf("expected detractor, got %s", m.LatestResponses[0].Category)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	campaigns := []*Campaign{npsCampaign("c1")}
	responses := responsesWithScores("c1", []int{0, 5, 7, 9, 10})
	first := Aggregate(responses, campaigns)
	second := Aggregate(responses, campaigns)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestCampaignMetricsFiltersOtherCampaigns(t *testing.T) {
	campaign := npsCampaign("c1")
	responses := responsesWithScores("c1", []int{9, 9})
	responses = append(responses, responsesWithScores("c2", []int{0, 0, 0})...)
	m := CampaignMetrics("c1", responses, campaign)
	if m.NPS != 100 {
		t.Fatalf("expected NPS 100 for campaign c1, got %d", m.NPS)
	}
	if len(m.LatestResponses) != 2 {
		t.Fatalf("expected feed of 2, got %d", len(m.LatestResponses))
	}
}
