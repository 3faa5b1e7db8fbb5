package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/socratai/socratai/internal/blob"
	"github.com/socratai/socratai/internal/events"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/topics"
)

// Upload stores a syllabus file, reads its text, extracts topics and
// creates the session.
func (s *Service) Upload(ctx context.Context, userID, filename string, r io.Reader) (*quiz.Session, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: file name is required", quiz.ErrValidation)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.opts.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: uploaded file is empty", quiz.ErrValidation)
	}
	if int64(len(data)) > s.opts.MaxUploadBytes {
		return nil, fmt.Errorf("%w: uploaded file exceeds %d bytes", quiz.ErrValidation, s.opts.MaxUploadBytes)
	}

	contentType := blob.ContentType(filename)
	location, err := s.blobs.Put(ctx, blob.UploadKey(userID, filename), data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	text, err := s.ocr.ReadText(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("read text from %s: %w", filename, err)
	}

	sess := quiz.Session{
		ID:            s.newID(),
		OwnerID:       userID,
		ImagePath:     location,
		ExtractedText: text,
		Topics:        topics.Extract(text),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info("session created", "session_id", sess.ID, "topics", len(sess.Topics))

	s.publish(ctx, events.SessionCreated, events.SessionCreatedPayload{
		SessionID: sess.ID,
		UserID:    userID,
		Topics:    sess.Topics,
	})

	return &sess, nil
}

// Topics returns the topic list of a session the caller owns.
func (s *Service) Topics(ctx context.Context, userID, sessionID string) ([]string, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Topics, nil
}

// History lists the caller's sessions, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]store.HistoryEntry, error) {
	entries, err := s.sessions.ListSessionsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if entries == nil {
		entries = []store.HistoryEntry{}
	}
	return entries, nil
}
