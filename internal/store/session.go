package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/socratai/socratai/internal/quiz"
)

type sessionRepo struct {
	s *Store
}

func (r *sessionRepo) CreateSession(ctx context.Context, sess quiz.Session) error {
	topics := sess.Topics
	if topics == nil {
		topics = []string{}
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}

	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}

	q := r.s.builder().Insert(sessionsTable.Name).
		Columns("id", "sequence", "owner_id", "image_path", "extracted_text", "topics", "created_at").
		Values(sess.ID, seqNum, sess.OwnerID, nullString(sess.ImagePath), sess.ExtractedText, string(topicsJSON), sess.CreatedAt.UTC())
	if err := r.s.exec(ctx, q); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) GetSession(ctx context.Context, id string) (*quiz.Session, error) {
	b := r.s.builder()
	t := b.Table(sessionsTable.Name)
	sel := b.Select(t.C("id"), t.C("owner_id"), t.C("image_path"), t.C("extracted_text"), t.C("topics"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C("id"), id))

	query, args := sel.Query()
	var (
		sess      quiz.Session
		imagePath sql.NullString
		topics    []byte
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).
		Scan(&sess.ID, &sess.OwnerID, &imagePath, &sess.ExtractedText, &topics, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	sess.ImagePath = imagePath.String
	if err := json.Unmarshal(topics, &sess.Topics); err != nil {
		return nil, fmt.Errorf("decode topics of session %s: %w", id, err)
	}
	return &sess, nil
}

func (r *sessionRepo) ListSessionsByOwner(ctx context.Context, ownerID string) ([]HistoryEntry, error) {
	b := r.s.builder()
	t := b.Table(sessionsTable.Name)
	sel := b.Select(t.C("id"), t.C("image_path"), t.C("topics"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C("owner_id"), ownerID)).
		OrderBy(entsql.Desc(t.C("sequence")))

	rows, err := r.s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e         HistoryEntry
			imagePath sql.NullString
			topics    []byte
		)
		if err := rows.Scan(&e.SessionID, &imagePath, &topics, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		e.ImagePath = imagePath.String
		if err := json.Unmarshal(topics, &e.Topics); err != nil {
			e.Topics = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	quizzes := &quizRepo{s: r.s}
	for i := range entries {
		score, ok, err := quizzes.LatestScore(ctx, entries[i].SessionID)
		if err != nil {
			return nil, err
		}
		if ok {
			entries[i].LastScore = &score
		}
	}
	return entries, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
