package repository

import (
	"context"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	// FindValid returns the token if it exists and has not expired,
	// nil otherwise.
	FindValid(ctx context.Context, token string) (*entity.AuthToken, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		token.Token,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
	)

	if err != nil {
		r.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create auth token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

func (r *tokenRepository) FindValid(ctx context.Context, token string) (*entity.AuthToken, error) {
	tokenID, err := uuid.Parse(token)
	if err != nil {
		// Malformed tokens are just invalid, not server errors.
		return nil, nil
	}

	query := `
		SELECT token, user_id, created_at, expires_at
		FROM auth_tokens
		WHERE token = $1 AND expires_at > NOW()
	`

	var t entity.AuthToken
	err = r.db.QueryRow(ctx, query, tokenID).Scan(
		&t.Token,
		&t.UserID,
		&t.CreatedAt,
		&t.ExpiresAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auth token", zap.Error(err))
		return nil, fmt.Errorf("find auth token: %w", err)
	}

	return &t, nil
}
