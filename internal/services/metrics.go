package services

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	colorPromoters  = "#10b981"
	colorPassives   = "#f59e0b"
	colorDetractors = "#ef4444"

	latestFeedSize = 5
)

// CategoryShare is one slice of the Promoter/Passive/Detractor breakdown.
// Value is the percentage formatted with two decimals ("0" for the empty case).
type CategoryShare struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Color    string `json:"color"`
}

// ScoreBucket is one bar of the dense 0-10 score histogram.
type ScoreBucket struct {
	Score string `json:"score"`
	Count int    `json:"count"`
}

// LatestResponse is a recent submission formatted for the dashboard feed.
type LatestResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Contact  string   `json:"contact,omitempty"`
	Score    *int     `json:"score"`
	Category Category `json:"category"`
	Date     string   `json:"date"`
}

// DashboardMetrics is the aggregate record behind every dashboard view.
// Recomputed on demand; never persisted.
type DashboardMetrics struct {
	NPS             int              `json:"nps"`
	ResponseRate    int              `json:"response_rate"` // delivery placeholders until send
	OpenRate        int              `json:"open_rate"`     // tracking exists
	ErrorRate       int              `json:"error_rate"`
	NPSPercentage   []CategoryShare  `json:"nps_percentage"`
	NPSScores       []ScoreBucket    `json:"nps_scores"`
	LatestResponses []LatestResponse `json:"latest_responses"`
}

// Aggregate reduces raw responses plus the campaign schemas they reference
// into one DashboardMetrics record. Responses pointing at unknown campaigns
// and unclassifiable responses contribute nothing; malformed input degrades
// by exclusion rather than erroring. Pure and idempotent.
func Aggregate(responses []*Response, campaigns []*Campaign) *DashboardMetrics {
	if len(responses) == 0 {
		return emptyMetrics()
	}

	byID := make(map[string]*Campaign, len(campaigns))
	for _, c := range campaigns {
		if c != nil {
			byID[c.ID] = c
		}
	}

	var promoters, passives, detractors int
	var scoreCounts [11]int
	for _, resp := range responses {
		if resp == nil {
			continue
		}
		campaign, ok := byID[resp.CampaignID]
		if !ok {
			continue
		}
		score, category := Classify(resp, campaign)
		if score == nil {
			continue
		}
		if *score >= 0 && *score <= 10 {
			scoreCounts[*score]++
		}
		switch category {
		case CategoryPromoter:
			promoters++
		case CategoryPassive:
			passives++
		default:
			detractors++
		}
	}

	total := promoters + passives + detractors
	nps := 0
	shares := zeroShares()
	if total > 0 {
		promotersPct := 100 * float64(promoters) / float64(total)
		detractorsPct := 100 * float64(detractors) / float64(total)
		nps = int(math.Round(promotersPct - detractorsPct))
		shares = []CategoryShare{
			{Category: "Promoters", Value: pct(promoters, total), Color: colorPromoters},
			{Category: "Passives", Value: pct(passives, total), Color: colorPassives},
			{Category: "Detractors", Value: pct(detractors, total), Color: colorDetractors},
		}
	}

	return &DashboardMetrics{
		NPS:             nps,
		ResponseRate:    100,
		OpenRate:        100,
		ErrorRate:       0,
		NPSPercentage:   shares,
		NPSScores:       buckets(scoreCounts),
		LatestResponses: latestFeed(responses, byID),
	}
}

// CampaignMetrics aggregates the responses of a single campaign.
func CampaignMetrics(campaignID string, responses []*Response, campaign *Campaign) *DashboardMetrics {
	filtered := make([]*Response, 0, len(responses))
	for _, r := range responses {
		if r != nil && r.CampaignID == campaignID {
			filtered = append(filtered, r)
		}
	}
	return Aggregate(filtered, []*Campaign{campaign})
}

func emptyMetrics() *DashboardMetrics {
	var zero [11]int
	return &DashboardMetrics{
		NPSPercentage:   zeroShares(),
		NPSScores:       buckets(zero),
		LatestResponses: []LatestResponse{},
	}
}

func zeroShares() []CategoryShare {
	return []CategoryShare{
		{Category: "Promoters", Value: "0", Color: colorPromoters},
		{Category: "Passives", Value: "0", Color: colorPassives},
		{Category: "Detractors", Value: "0", Color: colorDetractors},
	}
}

func pct(count, total int) string {
	return fmt.Sprintf("%.2f", 100*float64(count)/float64(total))
}

func buckets(counts [11]int) []ScoreBucket {
	out := make([]ScoreBucket, 0, len(counts))
	for score, count := range counts {
		out = append(out, ScoreBucket{Score: strconv.Itoa(score), Count: count})
	}
	return out
}

// latestFeed formats the last responses in submission order, most recent
// first. The feed is built from the raw list: responses whose campaign no
// longer resolves still appear, with a nil score and category N/A.
func latestFeed(responses []*Response, byID map[string]*Campaign) []LatestResponse {
	start := len(responses) - latestFeedSize
	if start < 0 {
		start = 0
	}
	out := make([]LatestResponse, 0, len(responses)-start)
	for i := len(responses) - 1; i >= start; i-- {
		resp := responses[i]
		if resp == nil {
			continue
		}
		score, category := Classify(resp, byID[resp.CampaignID])
		label := category
		if score == nil {
			label = "N/A"
		}
		out = append(out, LatestResponse{
			ID:       resp.SubmittedAt.Format(time.RFC3339),
			Name:     resp.RespondentName,
			Contact:  resp.Contact,
			Score:    score,
			Category: label,
			Date:     resp.SubmittedAt.Format("02/01/2006"),
		})
	}
	return out
}
