package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socratai/socratai/internal/auth"
	"github.com/socratai/socratai/internal/grading"
	"github.com/socratai/socratai/internal/logger"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/service"
)

// Accounts is the part of auth.Service the handlers use.
type Accounts interface {
	Signup(ctx context.Context, email, username, password string) (*auth.Token, error)
	Login(ctx context.Context, email, password string) (*auth.Token, error)
}

type Handler struct {
	svc      *service.Service
	accounts Accounts
	log      *logger.Logger
}

func NewHandler(svc *service.Service, accounts Accounts, log *logger.Logger) *Handler {
	return &Handler{svc: svc, accounts: accounts, log: log}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tok, err := h.accounts.Signup(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, tok)
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tok, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, tok)
}

func (h *Handler) History(c *gin.Context) {
	entries, err := h.svc.History(c.Request.Context(), currentUser(c))
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, entries)
}

func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("multipart field \"file\" is required: %w", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondServiceError(c, h.log, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	sess, err := h.svc.Upload(c.Request.Context(), currentUser(c), fh.Filename, f)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{
		"session_id": sess.ID,
		"message":    "Image uploaded successfully",
		"topics":     sess.Topics,
	})
}

func (h *Handler) Topics(c *gin.Context) {
	topics, err := h.svc.Topics(c.Request.Context(), currentUser(c), c.Param("session_id"))
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

type generateRequest struct {
	SessionID    string `json:"session_id" binding:"required"`
	NumQuestions *int   `json:"num_questions"`
}

func (h *Handler) GenerateQuiz(c *gin.Context) {
	h.generate(c, h.svc.GenerateInitial)
}

func (h *Handler) GenerateAdaptiveQuiz(c *gin.Context) {
	h.generate(c, h.svc.GenerateAdaptive)
}

type generateFunc func(ctx context.Context, userID, sessionID string, n int) (*quiz.Quiz, error)

func (h *Handler) generate(c *gin.Context, gen generateFunc) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	n := 0
	if req.NumQuestions != nil {
		if *req.NumQuestions < 1 {
			RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("num_questions must be at least 1"))
			return
		}
		n = *req.NumQuestions
	}

	q, err := gen(c.Request.Context(), currentUser(c), req.SessionID, n)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{
		"quiz_id":    q.ID,
		"questions":  q.Questions,
		"session_id": q.SessionID,
		"difficulty": q.Difficulty,
	})
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	var req struct {
		QuizID    string             `json:"quiz_id" binding:"required"`
		SessionID string             `json:"session_id" binding:"required"`
		Answers   map[string]int     `json:"answers"`
		TimeTaken map[string]float64 `json:"time_taken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	answers, err := grading.ParseAnswers(req.Answers)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	times, err := grading.ParseTimes(req.TimeTaken)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), currentUser(c), service.SubmitRequest{
		SessionID: req.SessionID,
		QuizID:    req.QuizID,
		Answers:   answers,
		TimeTaken: times,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, res)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), currentUser(c), c.Param("session_id"))
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, stats)
}
