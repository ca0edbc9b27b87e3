package models

import "encoding/json"

// PageResult is one page of students plus the totals of the whole result set.
type PageResult struct {
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
	TotalCount  int       `json:"totalCount"`
	TotalPages  int       `json:"totalPages"`
	Records     []Student `json:"records"`
}

// NewPageResult computes TotalPages as ceil(total/pageSize).
func NewPageResult(currentPage, pageSize, totalCount int, records []Student) *PageResult {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	if records == nil {
		records = []Student{}
	}
	return &PageResult{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		Records:     records,
	}
}

// UnmarshalJSON also accepts the legacy servlet payload that carries the records under "data".
func (p *PageResult) UnmarshalJSON(data []byte) error {
	type plain PageResult
	var aux struct {
		plain
		Data []Student `json:"data"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = PageResult(aux.plain)
	if p.Records == nil && aux.Data != nil {
		p.Records = aux.Data
	}
	return nil
}
