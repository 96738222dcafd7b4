package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Score is a 0-100 rating. The oracle sometimes quotes numbers, so it decodes
// from a JSON number or a numeric string.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("score %q is not a number", str)
		}
		*s = Score(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// ScoreBreakdown is one scored aspect of a resume.
type ScoreBreakdown struct {
	Score    Score  `json:"score"`
	Feedback string `json:"feedback"`
}

// KeywordMatch is the keyword sub-score plus the keywords the resume lacks.
type KeywordMatch struct {
	Score           Score    `json:"score"`
	Feedback        string   `json:"feedback"`
	MissingKeywords []string `json:"missingKeywords"`
}

// ResumeScore is the ATS review of a resume.
type ResumeScore struct {
	ATSScore               Score          `json:"atsScore"`
	OverallFeedback        string         `json:"overallFeedback"`
	KeywordMatch           KeywordMatch   `json:"keywordMatch"`
	FormatAndStructure     ScoreBreakdown `json:"formatAndStructure"`
	ContentQuality         ScoreBreakdown `json:"contentQuality"`
	ActionableImprovements []string       `json:"actionableImprovements"`
}

// ScoreRating buckets a 0-100 score.
type ScoreRating string

const (
	RatingStrong ScoreRating = "strong"
	RatingFair   ScoreRating = "fair"
	RatingWeak   ScoreRating = "weak"
)

// RateScore buckets score: 80 and above is strong, 60 and above fair.
func RateScore(score float64) ScoreRating {
	switch {
	case score >= 80:
		return RatingStrong
	case score >= 60:
		return RatingFair
	default:
		return RatingWeak
	}
}

// Rating returns the bucket of the overall ATS score.
func (r *ResumeScore) Rating() ScoreRating {
	return RateScore(float64(r.ATSScore))
}
