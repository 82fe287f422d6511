package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsSummary backs the dashboard stat cards and charts.
type AnalyticsSummary struct {
	TotalApplications int             `json:"totalApplications"`
	ByStage           map[string]int  `json:"byStage"`
	ByPosition        map[string]int  `json:"byPosition"`
	PhoneInterviewed  int             `json:"phoneInterviewed"`
	Shortlisted       int             `json:"shortlisted"`
	Hired             int             `json:"hired"`
	ScoredApplicants  int             `json:"scoredApplicants"`
	AverageScore      decimal.Decimal `json:"averageScore"`
	TotalSubmissions  int64           `json:"totalSubmissions"`
	TotalForms        int64           `json:"totalForms"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}
