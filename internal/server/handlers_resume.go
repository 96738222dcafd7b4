package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/resume"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

type scoreResumeRequest struct {
	Text string `json:"text" validate:"required"`
}

type resumeScoreResponse struct {
	*types.ResumeScore
	Rating     types.ScoreRating `json:"rating"`
	ArchiveKey string            `json:"archiveKey,omitempty"`
}

type credentialStatusResponse struct {
	Status string `json:"status"`
}

// handleScoreResume accepts either a multipart upload in the "file" field or
// a JSON body {"text": "..."}.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var (
		text       string
		archiveKey string
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		upload, ok := s.readUpload(w, r)
		if !ok {
			return
		}
		extracted, err := resume.ExtractText(upload.mimeType, upload.data)
		if err != nil {
			var unsupported *resume.UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				err = &ErrValidation{Field: "file", Message: "could not read document"}
			}
			s.fail(w, r, err)
			return
		}
		text = extracted
		archiveKey = s.archiveUpload(r, userID, upload)
	} else {
		var req scoreResumeRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		text = req.Text
	}

	if strings.TrimSpace(text) == "" {
		s.fail(w, r, &ErrValidation{Field: "text", Message: "resume text is empty"})
		return
	}

	score, err := s.resumes.ScoreResume(r.Context(), text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resumeScoreResponse{
		ResumeScore: score,
		Rating:      score.Rating(),
		ArchiveKey:  archiveKey,
	})
}

type upload struct {
	filename string
	mimeType string
	data     []byte
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return nil, false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart upload")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "file", Message: "required"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart upload")
		return nil, false
	}

	// Browsers often send octet-stream; the extension is more reliable then
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || strings.HasPrefix(mimeType, "application/octet-stream") {
		mimeType = resume.MIMEFromFilename(header.Filename)
	}
	return &upload{filename: filepath.Base(header.Filename), mimeType: mimeType, data: data}, true
}

// archiveUpload stores the original file when an archive is configured.
// Failures are logged and do not block scoring.
func (s *Server) archiveUpload(r *http.Request, userID uuid.UUID, u *upload) string {
	if s.archive == nil {
		return ""
	}
	key, err := s.archive.Put(r.Context(), userID, u.filename, u.mimeType, u.data)
	if err != nil {
		s.logger.Warn("failed to archive resume",
			zap.String("filename", u.filename),
			zap.Error(err))
		return ""
	}
	return key
}

func (s *Server) handleCredentialStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.userID(w, r); !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, credentialStatusResponse{Status: resume.CredentialStatus(s.apiKey)})
}
