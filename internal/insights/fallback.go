package insights

import "github.com/jonathan/career-coach/internal/types"

// FallbackGrowthRate is the growth rate of the fallback insight.
const FallbackGrowthRate = 10.0

// Fallback returns the static insight served when generation fails.
// Every call returns a fresh value.
func Fallback() types.IndustryInsight {
	return types.IndustryInsight{
		SalaryRanges: []types.SalaryRange{
			{Role: "Entry Level", Min: 60000, Max: 80000, Median: 70000, Location: "US"},
			{Role: "Mid Level", Min: 80000, Max: 120000, Median: 100000, Location: "US"},
			{Role: "Senior Level", Min: 120000, Max: 180000, Median: 150000, Location: "US"},
		},
		GrowthRate:        FallbackGrowthRate,
		DemandLevel:       types.DemandMedium,
		TopSkills:         []string{"Communication", "Problem Solving", "Teamwork", "Adaptability", "Technical Skills"},
		MarketOutlook:     types.OutlookNeutral,
		KeyTrends:         []string{"Digital Transformation", "Remote Work", "Data-Driven Decisions", "Automation", "Sustainability"},
		RecommendedSkills: []string{"Data Analytics", "Project Management", "Digital Literacy", "Communication", "Critical Thinking"},
	}
}
