package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// schemaVersion is bumped whenever a table definition changes. It is
// recorded in the schema_version table on open.
const schemaVersion = 2

var (
	usersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "username", Type: field.TypeString},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	usersTable = &schema.Table{
		Name:       "users",
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	sessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "image_path", Type: field.TypeString, Nullable: true},
		{Name: "extracted_text", Type: field.TypeString, Size: 2147483647},
		{Name: "topics", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "owner_id", Type: field.TypeString},
	}
	sessionsTable = &schema.Table{
		Name:       "sessions",
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "sessions_users_sessions",
				Columns:    []*schema.Column{sessionsColumns[6]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "session_owner_id", Columns: []*schema.Column{sessionsColumns[6]}},
		},
	}

	quizzesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "quiz_data", Type: field.TypeJSON},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "quiz_type", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
	}
	quizzesTable = &schema.Table{
		Name:       "quizzes",
		Columns:    quizzesColumns,
		PrimaryKey: []*schema.Column{quizzesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quizzes_sessions_quizzes",
				Columns:    []*schema.Column{quizzesColumns[6]},
				RefColumns: []*schema.Column{sessionsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "quiz_session_id", Columns: []*schema.Column{quizzesColumns[6]}},
		},
	}

	submissionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "score", Type: field.TypeFloat64},
		{Name: "results", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
	}
	submissionsTable = &schema.Table{
		Name:       "submissions",
		Columns:    submissionsColumns,
		PrimaryKey: []*schema.Column{submissionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "submissions_quizzes_submissions",
				Columns:    []*schema.Column{submissionsColumns[5]},
				RefColumns: []*schema.Column{quizzesColumns[0]},
				OnDelete:   schema.NoAction,
			},
			{
				Symbol:     "submissions_sessions_submissions",
				Columns:    []*schema.Column{submissionsColumns[6]},
				RefColumns: []*schema.Column{sessionsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "submission_session_id", Columns: []*schema.Column{submissionsColumns[6]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
		{Name: "request_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
		{Name: "response_body", Type: field.TypeString, Nullable: true, Size: 2147483647},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
		},
	}

	schemaVersionColumns = []*schema.Column{
		{Name: "version", Type: field.TypeInt},
		{Name: "applied_at", Type: field.TypeTime},
	}
	schemaVersionTable = &schema.Table{
		Name:       "schema_version",
		Columns:    schemaVersionColumns,
		PrimaryKey: []*schema.Column{schemaVersionColumns[0]},
	}

	// globalSequence holds a single row (id 1) whose next_val is the next
	// number handed out by sequenceCounter.
	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	globalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	tables = []*schema.Table{
		usersTable,
		sessionsTable,
		quizzesTable,
		submissionsTable,
		llmEventsTable,
		schemaVersionTable,
		globalSequenceTable,
	}
)

func init() {
	sessionsTable.ForeignKeys[0].RefTable = usersTable
	quizzesTable.ForeignKeys[0].RefTable = sessionsTable
	submissionsTable.ForeignKeys[0].RefTable = quizzesTable
	submissionsTable.ForeignKeys[1].RefTable = sessionsTable
}
