package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/config"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/domain/models"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// PostgresStore is the durable session store driver. Both logs live in
// append-only tables ordered by a sequence column; per-session serialization
// comes from the transactional inserts, so concurrent appends to one session
// cannot interleave a conversation pair.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS honeypot_conversation (
	id         BIGSERIAL PRIMARY KEY,
	session_id TEXT NOT NULL,
	sender     TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_honeypot_conversation_session
	ON honeypot_conversation (session_id, id);

CREATE TABLE IF NOT EXISTS honeypot_intelligence (
	id          BIGSERIAL PRIMARY KEY,
	entry_id    UUID NOT NULL,
	session_id  TEXT NOT NULL,
	source_text TEXT NOT NULL,
	extracted   JSONB NOT NULL,
	observed_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_honeypot_intelligence_session
	ON honeypot_intelligence (session_id, id);
`

// NewPostgres connects to PostgreSQL and ensures the session tables exist.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (*PostgresStore, error) {
	log = log.WithComponent("postgres-store")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Str("dbname", cfg.DBName).Msg("connecting to PostgreSQL")

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(connectCtx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create session tables: %w", err)
	}

	log.Info().Msg("connected to PostgreSQL successfully")

	return &PostgresStore{pool: pool, logger: log}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.logger.Info().Msg("closing PostgreSQL connection pool")
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// AppendConversation inserts msgs in a single transaction so the pair lands
// atomically and in order.
func (s *PostgresStore) AppendConversation(ctx context.Context, sessionID string, msgs ...models.Message) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, msg := range msgs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO honeypot_conversation (session_id, sender, text) VALUES ($1, $2, $3)`,
			sessionID, msg.Sender, msg.Text,
		); err != nil {
			return fmt.Errorf("failed to insert conversation turn: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit conversation append: %w", err)
	}
	return nil
}

// AppendIntelligence inserts one intelligence entry.
func (s *PostgresStore) AppendIntelligence(ctx context.Context, sessionID string, entry models.IntelligenceEntry) error {
	extracted, err := json.Marshal(entry.Extracted)
	if err != nil {
		return fmt.Errorf("failed to marshal extracted intelligence: %w", err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO honeypot_intelligence (entry_id, session_id, source_text, extracted, observed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, sessionID, entry.SourceText, extracted, entry.ObservedAt,
	); err != nil {
		return fmt.Errorf("failed to insert intelligence entry: %w", err)
	}
	return nil
}

// Get reads both logs in insertion order. A session exists once either log
// has at least one row.
func (s *PostgresStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	conversation, err := s.conversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	intelligence, err := s.intelligence(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(conversation) == 0 && len(intelligence) == 0 {
		return nil, ErrSessionNotFound
	}

	return &models.Session{
		ID:              sessionID,
		Conversation:    conversation,
		IntelligenceLog: intelligence,
	}, nil
}

func (s *PostgresStore) conversation(ctx context.Context, sessionID string) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sender, text FROM honeypot_conversation WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.Sender, &m.Text); err != nil {
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversation rows: %w", err)
	}
	return msgs, nil
}

func (s *PostgresStore) intelligence(ctx context.Context, sessionID string) ([]models.IntelligenceEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT entry_id, source_text, extracted, observed_at
		 FROM honeypot_intelligence WHERE session_id = $1 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query intelligence log: %w", err)
	}
	defer rows.Close()

	var entries []models.IntelligenceEntry
	for rows.Next() {
		var (
			entry     models.IntelligenceEntry
			extracted []byte
		)
		if err := rows.Scan(&entry.ID, &entry.SourceText, &extracted, &entry.ObservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan intelligence entry: %w", err)
		}
		if err := json.Unmarshal(extracted, &entry.Extracted); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extracted intelligence: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read intelligence rows: %w", err)
	}
	return entries, nil
}
