package domain

import "time"

// Visibility of a project
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Project represents a project known to the quality service
type Project struct {
	Key              string     `json:"key"`
	Name             string     `json:"name"`
	Visibility       Visibility `json:"visibility,omitempty"`
	LastAnalysisDate *time.Time `json:"lastAnalysisDate,omitempty"`
	QualityGate      string     `json:"qualityGate,omitempty"`
	Language         string     `json:"language,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
}

// Paging is the pagination block returned by search endpoints
type Paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// ProjectPage is one page of a project search
type ProjectPage struct {
	Projects []Project `json:"projects"`
	Paging   Paging    `json:"paging"`
}
