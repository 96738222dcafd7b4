package server

import (
	"net/http"

	"github.com/jonathan/career-coach/internal/quiz"
	"github.com/jonathan/career-coach/internal/types"
)

type quizResponse struct {
	Questions []types.Question `json:"questions"`
}

type assessmentsResponse struct {
	Assessments []types.Assessment `json:"assessments"`
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req types.GenerateQuizRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	// The profile is the quiz focus when no topics are given
	user, err := s.userService.Profile(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	questions, err := s.quizzes.Generate(r.Context(), quiz.Request{
		Count:    req.Count,
		Topics:   req.Topics,
		Industry: user.IndustryName(),
		Skills:   user.Skills,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, quizResponse{Questions: questions})
}

func (s *Server) handleSaveAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req types.SaveAssessmentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	assessment, err := s.assessments.SaveResult(r.Context(), userID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, assessment)
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	assessments, err := s.assessments.List(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if assessments == nil {
		assessments = []types.Assessment{}
	}
	s.jsonResponse(w, http.StatusOK, assessmentsResponse{Assessments: assessments})
}

func (s *Server) handleAssessmentStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	stats, err := s.assessments.Stats(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}
