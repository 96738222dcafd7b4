package server

import (
	"net/http"

	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	user, err := s.userService.Get(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("profile updated",
		zap.String("user_id", userID.String()),
		zap.String("industry", user.Industry))
	s.jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	status, err := s.userService.OnboardingStatus(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
}
