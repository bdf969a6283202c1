package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// PostgresAPIKeyStore implements the store.APIKeyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAPIKeyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAPIKeyStore creates a new PostgreSQL implementation of the APIKeyStore interface.
// db must be a *sql.DB or *sql.Tx for CreateWithinLimit to work.
func NewPostgresAPIKeyStore(db store.DBTX, logger *slog.Logger) *PostgresAPIKeyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAPIKeyStore{
		db:     db,
		logger: logger.With(slog.String("component", "api_key_store")),
	}
}

// Ensure PostgresAPIKeyStore implements store.APIKeyStore interface
var _ store.APIKeyStore = (*PostgresAPIKeyStore)(nil)

const insertAPIKeyQuery = `
	INSERT INTO api_keys (id, account_id, key_value, is_active, created_at)
	VALUES ($1, $2, $3, $4, $5)
`

// Create implements store.APIKeyStore.Create
func (s *PostgresAPIKeyStore) Create(ctx context.Context, key *domain.APIKey) error {
	return s.insert(ctx, s.db, key)
}

func (s *PostgresAPIKeyStore) insert(ctx context.Context, db store.DBTX, key *domain.APIKey) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := key.Validate(); err != nil {
		return store.NewStoreError("api_key", "create", "validation failed", err)
	}

	_, err := db.ExecContext(ctx, insertAPIKeyQuery,
		key.ID,
		key.AccountID,
		key.Key,
		key.IsActive,
		key.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: account with ID %s not found", store.ErrInvalidEntity, key.AccountID)
		}
		log.Error("failed to create api key",
			slog.String("error", redact.Error(err)),
			slog.String("account_id", key.AccountID.String()))
		return store.NewStoreError("api_key", "create", "insert failed", MapError(err))
	}

	return nil
}

// CreateWithinLimit implements store.APIKeyStore.CreateWithinLimit.
// The owning account row is locked for the duration of the transaction, so
// concurrent issuances for the same account are serialized while different
// accounts proceed in parallel.
func (s *PostgresAPIKeyStore) CreateWithinLimit(ctx context.Context, key *domain.APIKey, limit int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return store.WithinTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM accounts WHERE id = $1 FOR UPDATE`,
			key.AccountID,
		).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: account with ID %s not found", store.ErrInvalidEntity, key.AccountID)
			}
			return store.NewStoreError("api_key", "create_within_limit", "failed to lock account", err)
		}

		var count int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM api_keys WHERE account_id = $1`,
			key.AccountID,
		).Scan(&count)
		if err != nil {
			return store.NewStoreError("api_key", "create_within_limit", "failed to count keys", err)
		}

		if count >= limit {
			log.Debug("api key limit reached under lock",
				slog.String("account_id", key.AccountID.String()),
				slog.Int("count", count),
				slog.Int("limit", limit))
			return store.ErrKeyLimitReached
		}

		return s.insert(ctx, tx, key)
	})
}

// GetByID implements store.APIKeyStore.GetByID
func (s *PostgresAPIKeyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	query := `
		SELECT id, account_id, key_value, is_active, created_at
		FROM api_keys
		WHERE id = $1
	`
	return s.getOne(ctx, "get_by_id", query, id)
}

// GetByValue implements store.APIKeyStore.GetByValue
func (s *PostgresAPIKeyStore) GetByValue(ctx context.Context, value string) (*domain.APIKey, error) {
	query := `
		SELECT id, account_id, key_value, is_active, created_at
		FROM api_keys
		WHERE key_value = $1
	`
	return s.getOne(ctx, "get_by_value", query, value)
}

func (s *PostgresAPIKeyStore) getOne(
	ctx context.Context,
	operation, query string,
	arg any,
) (*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var key domain.APIKey
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&key.ID,
		&key.AccountID,
		&key.Key,
		&key.IsActive,
		&key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAPIKeyNotFound
		}
		log.Error("failed to load api key",
			slog.String("operation", operation),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("api_key", operation, "query failed", err)
	}

	return &key, nil
}

// ListByAccount implements store.APIKeyStore.ListByAccount
func (s *PostgresAPIKeyStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.APIKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, account_id, key_value, is_active, created_at
		FROM api_keys
		WHERE account_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		log.Error("failed to list api keys",
			slog.String("account_id", accountID.String()),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("api_key", "list_by_account", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	keys := make([]*domain.APIKey, 0)
	for rows.Next() {
		var key domain.APIKey
		if err := rows.Scan(&key.ID, &key.AccountID, &key.Key, &key.IsActive, &key.CreatedAt); err != nil {
			return nil, store.NewStoreError("api_key", "list_by_account", "scan failed", err)
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("api_key", "list_by_account", "iteration failed", err)
	}

	return keys, nil
}

// SetActive implements store.APIKeyStore.SetActive
func (s *PostgresAPIKeyStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE api_keys SET is_active = $1 WHERE id = $2`,
		active, id,
	)
	if err != nil {
		log.Error("failed to update api key",
			slog.String("key_id", id.String()),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("api_key", "set_active", "update failed", err)
	}

	return CheckRowsAffected(result, store.ErrAPIKeyNotFound)
}
