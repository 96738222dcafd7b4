package prompts

import (
	"fmt"
	"strconv"
	"strings"
)

// Template files and keys
const (
	FileInsights = "insights.json"
	FileQuiz     = "quiz.json"
	FileResume   = "resume.json"

	KeyIndustryInsight = "industry-insight"
	KeyGenerateQuiz    = "generate-quiz"
	KeyImprovementTip  = "improvement-tip"
	KeyScoreResume     = "score-resume"
)

// Request is a prompt ready to render: a template plus its ordered parameters.
// It is an immutable value.
type Request struct {
	File   string
	Key    string
	Params []Param
}

// Render loads the template and substitutes the parameters.
func (r Request) Render() (string, error) {
	template, err := Get(r.File, r.Key)
	if err != nil {
		return "", err
	}
	return Format(template, r.Params...), nil
}

// Value returns the parameter named key.
func (r Request) Value(key string) (string, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// IndustryInsight asks for salary ranges, growth, demand, skills, outlook and trends.
func IndustryInsight(industry string) Request {
	return Request{
		File:   FileInsights,
		Key:    KeyIndustryInsight,
		Params: []Param{{Key: "Industry", Value: industry}},
	}
}

// QuizParams selects the quiz size and focus.
type QuizParams struct {
	Count            int
	Topics           []string
	FallbackIndustry string
	FallbackSkills   []string
}

// Quiz asks for Count multiple-choice questions. The focus is the joined topics,
// or the fallback industry plus skills when no topics were chosen.
func Quiz(p QuizParams) (Request, error) {
	if p.Count < 1 {
		return Request{}, fmt.Errorf("question count must be at least 1, got %d", p.Count)
	}
	return Request{
		File: FileQuiz,
		Key:  KeyGenerateQuiz,
		Params: []Param{
			{Key: "Count", Value: strconv.Itoa(p.Count)},
			{Key: "Focus", Value: quizFocus(p)},
		},
	}, nil
}

func quizFocus(p QuizParams) string {
	if focus := strings.Join(p.Topics, ", "); focus != "" {
		return focus
	}
	focus := p.FallbackIndustry
	if len(p.FallbackSkills) > 0 {
		focus += " and " + strings.Join(p.FallbackSkills, ", ")
	}
	return focus
}

// ImprovementTip asks for one or two plain-prose study recommendations.
func ImprovementTip(weakTopics []string) Request {
	return Request{
		File:   FileQuiz,
		Key:    KeyImprovementTip,
		Params: []Param{{Key: "WeakTopics", Value: strings.Join(weakTopics, ", ")}},
	}
}

// ResumeScore asks for an ATS score, sub-scores and improvements for resumeText.
func ResumeScore(resumeText string) Request {
	return Request{
		File:   FileResume,
		Key:    KeyScoreResume,
		Params: []Param{{Key: "ResumeText", Value: resumeText}},
	}
}
