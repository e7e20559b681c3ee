package services

import (
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportStore abstracts persistence operations required by ExportService.
type ExportStore interface {
	GetCampaign(id string) (*Campaign, error)
	ListResponsesByCampaign(campaignID string) ([]*Response, error)
}

type ExportService struct {
	store ExportStore
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

// ResponsesCSV exports a campaign's responses as long-format CSV.
func (s *ExportService) ResponsesCSV(tenantID, campaignID string) ([]byte, error) {
	rows, err := s.rows(tenantID, campaignID)
	if err != nil {
		return nil, err
	}
	return ExportResponsesCSV(rows)
}

// ResponsesXLSX exports a campaign's responses as a single-sheet workbook.
func (s *ExportService) ResponsesXLSX(tenantID, campaignID string) ([]byte, error) {
	rows, err := s.rows(tenantID, campaignID)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	const sheet = "Responses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, r := range rows {
		for col, v := range r.record() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ExportService) rows(tenantID, campaignID string) ([]ResponseRow, error) {
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
	questionText := map[string]string{}
	for _, q := range c.Questions {
		questionText[q.ID] = q.Text
	}
	rows := make([]ResponseRow, 0, len(responses))
	for _, resp := range responses {
		_, category := Classify(resp, c)
		// emit answers in declared question order for stable files
		for _, q := range c.Questions {
			ans, ok := resp.Answers[q.ID]
			if !ok {
				continue
			}
			rows = append(rows, ResponseRow{
				ResponseID:  resp.ID,
				Respondent:  resp.RespondentName,
				Contact:     resp.Contact,
				QuestionID:  q.ID,
				Question:    questionText[q.ID],
				Answer:      FormatAnswer(ans),
				Category:    string(category),
				SubmittedAt: resp.SubmittedAt.Format(time.RFC3339),
			})
		}
	}
	return rows, nil
}
