package types

import (
	"time"

	"github.com/google/uuid"
)

// DemandLevel is the market demand for an industry's skills.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandLow    DemandLevel = "LOW"
)

// DemandLevels lists every DemandLevel value.
var DemandLevels = []DemandLevel{DemandHigh, DemandMedium, DemandLow}

// MarketOutlook is the overall direction of an industry.
type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "POSITIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookNegative MarketOutlook = "NEGATIVE"
)

// MarketOutlooks lists every MarketOutlook value.
var MarketOutlooks = []MarketOutlook{OutlookPositive, OutlookNeutral, OutlookNegative}

// SalaryRange is the pay band for one role.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// IndustryInsight is the normalized market analysis for one industry.
type IndustryInsight struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       DemandLevel   `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     MarketOutlook `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

// StoredInsight is an IndustryInsight persisted for an industry.
type StoredInsight struct {
	IndustryInsight

	ID          uuid.UUID `json:"id"`
	Industry    string    `json:"industry"`
	LastUpdated time.Time `json:"lastUpdated"`
	NextUpdate  time.Time `json:"nextUpdate"`
}

// Stale reports whether the insight is due for regeneration at now.
func (s *StoredInsight) Stale(now time.Time) bool {
	return !now.Before(s.NextUpdate)
}
