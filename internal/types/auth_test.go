package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
	}{
		{name: "valid", request: CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "password123"}},
		{name: "missing name", request: CreateUserRequest{Email: "jane@example.com", Password: "password123"}, wantErr: true},
		{name: "bad email", request: CreateUserRequest{Name: "Jane", Email: "not-an-email", Password: "password123"}, wantErr: true},
		{name: "short password", request: CreateUserRequest{Name: "Jane", Email: "jane@example.com", Password: "short"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_Validation(t *testing.T) {
	validate := validator.New()
	years := func(n int) *int { return &n }

	tests := []struct {
		name    string
		request UpdateProfileRequest
		wantErr bool
	}{
		{name: "industry only", request: UpdateProfileRequest{Industry: "tech"}},
		{name: "full", request: UpdateProfileRequest{Industry: "tech", SubIndustry: "Software Development", ExperienceYears: years(5), Bio: "Go developer", Skills: []string{"Go", "SQL"}}},
		{name: "missing industry", request: UpdateProfileRequest{Bio: "x"}, wantErr: true},
		{name: "negative experience", request: UpdateProfileRequest{Industry: "tech", ExperienceYears: years(-1)}, wantErr: true},
		{name: "too much experience", request: UpdateProfileRequest{Industry: "tech", ExperienceYears: years(61)}, wantErr: true},
		{name: "empty skill", request: UpdateProfileRequest{Industry: "tech", Skills: []string{"Go", ""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_IndustryKey(t *testing.T) {
	tests := []struct {
		industry, sub, want string
	}{
		{industry: "tech", sub: "Software Development", want: "tech-software-development"},
		{industry: "tech", sub: "  Data   Science ", want: "tech-data-science"},
		{industry: " healthcare ", sub: "", want: "healthcare"},
	}
	for _, tt := range tests {
		r := UpdateProfileRequest{Industry: tt.industry, SubIndustry: tt.sub}
		assert.Equal(t, tt.want, r.IndustryKey())
	}
}

func TestGenerateQuizRequest_Validation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(GenerateQuizRequest{Count: 5, Topics: []string{"Go"}}))
	assert.NoError(t, validate.Struct(GenerateQuizRequest{Count: 1}))
	assert.Error(t, validate.Struct(GenerateQuizRequest{Count: 0}))
	assert.Error(t, validate.Struct(GenerateQuizRequest{Count: 21}))
	assert.Error(t, validate.Struct(GenerateQuizRequest{Count: 3, Topics: []string{""}}))
}

func TestUser_JSONOmitsEmptyProfile(t *testing.T) {
	u := User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", Skills: []string{}}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "industry")
	assert.NotContains(t, m, "experience_years")
	assert.Contains(t, m, "skills")
	assert.NotContains(t, m, "password_hash")
}

func TestRateScore(t *testing.T) {
	assert.Equal(t, RatingStrong, RateScore(80))
	assert.Equal(t, RatingFair, RateScore(79.9))
	assert.Equal(t, RatingFair, RateScore(60))
	assert.Equal(t, RatingWeak, RateScore(59))
}

func TestScore_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Score
		wantErr bool
	}{
		{name: "number", input: `72`, want: 72},
		{name: "fraction", input: `70.5`, want: 70.5},
		{name: "quoted number", input: `"85"`, want: 85},
		{name: "quoted with spaces", input: `" 60 "`, want: 60},
		{name: "null", input: `null`, want: 0},
		{name: "word", input: `"high"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestResumeScore_QuotedSubScores(t *testing.T) {
	var r ResumeScore
	require.NoError(t, json.Unmarshal([]byte(`{"atsScore":"85","keywordMatch":{"score":"60"},"formatAndStructure":{"score":"80"}}`), &r))
	assert.Equal(t, Score(85), r.ATSScore)
	assert.Equal(t, Score(60), r.KeywordMatch.Score)
	assert.Equal(t, Score(80), r.FormatAndStructure.Score)
	assert.Equal(t, RatingStrong, r.Rating())
}

func TestStoredInsight_Stale(t *testing.T) {
	s := StoredInsight{}
	assert.True(t, s.Stale(s.NextUpdate))
	assert.False(t, s.Stale(s.NextUpdate.Add(-1)))
}
