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

// quizData is the stored shape of a generated question set.
type quizData struct {
	Questions  []quiz.Question `json:"questions"`
	Difficulty quiz.Difficulty `json:"difficulty"`
	TopicCount int             `json:"topic_count"`
}

// DecodeQuizData parses a stored quiz_data payload.
func DecodeQuizData(raw []byte) ([]quiz.Question, error) {
	var d quizData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d.Questions, nil
}

type quizRepo struct {
	s *Store
}

func (r *quizRepo) CreateQuiz(ctx context.Context, q quiz.Quiz) error {
	data, err := json.Marshal(quizData{
		Questions:  q.Questions,
		Difficulty: q.Difficulty,
		TopicCount: q.TopicCount,
	})
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}

	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}

	ins := r.s.builder().Insert(quizzesTable.Name).
		Columns("id", "sequence", "session_id", "quiz_data", "difficulty", "quiz_type", "created_at").
		Values(q.ID, seqNum, q.SessionID, string(data), string(q.Difficulty), q.Type, q.CreatedAt.UTC())
	if err := r.s.exec(ctx, ins); err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	b := r.s.builder()
	t := b.Table(quizzesTable.Name)
	sel := b.Select(t.C("id"), t.C("session_id"), t.C("quiz_data"), t.C("difficulty"), t.C("quiz_type"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C("id"), id))

	query, args := sel.Query()
	var (
		q          quiz.Quiz
		raw        []byte
		difficulty string
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).
		Scan(&q.ID, &q.SessionID, &raw, &difficulty, &q.Type, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query quiz: %w", err)
	}

	var d quizData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode quiz %s: %w: %v", id, quiz.ErrDataCorruption, err)
	}
	q.Questions = d.Questions
	q.TopicCount = d.TopicCount
	q.Difficulty = quiz.Difficulty(difficulty)
	return &q, nil
}

func (r *quizRepo) CreateSubmission(ctx context.Context, sub quiz.Submission) error {
	results := sub.Results
	if results == nil {
		results = []quiz.ResultItem{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}

	ins := r.s.builder().Insert(submissionsTable.Name).
		Columns("id", "sequence", "quiz_id", "session_id", "score", "results", "created_at").
		Values(sub.ID, seqNum, sub.QuizID, sub.SessionID, sub.Score, string(data), sub.CreatedAt.UTC())
	if err := r.s.exec(ctx, ins); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (r *quizRepo) LatestScore(ctx context.Context, sessionID string) (float64, bool, error) {
	b := r.s.builder()
	t := b.Table(submissionsTable.Name)
	sel := b.Select(t.C("score")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(entsql.Desc(t.C("sequence"))).
		Limit(1)

	query, args := sel.Query()
	var score float64
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query latest score: %w", err)
	}
	return score, true, nil
}

func (r *quizRepo) LatestDifficulty(ctx context.Context, sessionID string) (quiz.Difficulty, bool, error) {
	b := r.s.builder()
	t := b.Table(quizzesTable.Name)
	sel := b.Select(t.C("difficulty")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(entsql.Desc(t.C("sequence"))).
		Limit(1)

	query, args := sel.Query()
	var d string
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&d)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query latest difficulty: %w", err)
	}
	return quiz.Difficulty(d), true, nil
}

func (r *quizRepo) QuestionTexts(ctx context.Context, sessionID string) ([]string, error) {
	b := r.s.builder()
	t := b.Table(quizzesTable.Name)
	sel := b.Select(t.C("quiz_data")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("sequence"))

	rows, err := r.s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query question texts: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quiz data: %w", err)
		}
		questions, err := DecodeQuizData(raw)
		if err != nil {
			// Prior questions only steer dedup; an unreadable quiz
			// contributes nothing.
			continue
		}
		for _, q := range questions {
			texts = append(texts, q.Text)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz data: %w", err)
	}
	return texts, nil
}

func (r *quizRepo) SubmissionRows(ctx context.Context, sessionID string) ([]SubmissionRow, error) {
	b := r.s.builder()
	// Alias both sides. An unaliased joined table is renamed t1 by the
	// builder, and q.C would then name a table not in the FROM clause.
	s := b.Table(submissionsTable.Name).As("s")
	q := b.Table(quizzesTable.Name).As("q")
	sel := b.Select(s.C("id"), s.C("quiz_id"), s.C("score"), s.C("created_at"), s.C("results"), q.C("quiz_data")).
		From(s).
		Join(q).On(s.C("quiz_id"), q.C("id")).
		Where(entsql.EQ(s.C("session_id"), sessionID)).
		OrderBy(s.C("sequence"))

	rows, err := r.s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRow
	for rows.Next() {
		var (
			row           SubmissionRow
			results, data []byte
		)
		if err := rows.Scan(&row.SubmissionID, &row.QuizID, &row.Score, &row.CreatedAt, &results, &data); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		row.Results = results
		row.QuizData = data
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}
