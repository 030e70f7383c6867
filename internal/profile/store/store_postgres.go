package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cleanslate/internal/crecord"
	"cleanslate/internal/profile"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

// PostgresStore persists profiles in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE user_profiles (
//	    user_id               UUID PRIMARY KEY,
//	    atty_organization     TEXT NOT NULL DEFAULT '',
//	    atty_name             TEXT NOT NULL DEFAULT '',
//	    atty_address_line_one TEXT NOT NULL DEFAULT '',
//	    atty_address_line_two TEXT NOT NULL DEFAULT '',
//	    atty_phone            TEXT NOT NULL DEFAULT '',
//	    atty_bar_id           TEXT NOT NULL DEFAULT '',
//	    expungement_template  UUID,
//	    sealing_template      UUID,
//	    updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `user_id, atty_organization, atty_name, atty_address_line_one,
	atty_address_line_two, atty_phone, atty_bar_id, expungement_template, sealing_template, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p profile.UserProfile) error {
	lineOne, lineTwo := addressLines(p.Attorney)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		uuid.UUID(p.UserID), p.Attorney.Organization, p.Attorney.FullName,
		lineOne, lineTwo, p.Attorney.OrganizationPhone, p.Attorney.BarID,
		uuid.UUID(p.ExpungementTemplate), uuid.UUID(p.SealingTemplate), p.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID id.UserID) (profile.UserProfile, error) {
	var p profile.UserProfile
	var uid, expungement, sealing uuid.UUID
	var lineOne, lineTwo string
	err := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1
	`, uuid.UUID(userID)).Scan(
		&uid, &p.Attorney.Organization, &p.Attorney.FullName,
		&lineOne, &lineTwo, &p.Attorney.OrganizationPhone, &p.Attorney.BarID,
		&expungement, &sealing, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.UserProfile{}, sentinel.ErrNotFound
		}
		return profile.UserProfile{}, fmt.Errorf("scan profile: %w", err)
	}
	p.UserID = id.UserID(uid)
	p.ExpungementTemplate = id.TemplateID(expungement)
	p.SealingTemplate = id.TemplateID(sealing)
	if lineOne != "" || lineTwo != "" {
		p.Attorney.Address = &crecord.Address{LineOne: lineOne, CityStateZip: lineTwo}
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p profile.UserProfile) error {
	lineOne, lineTwo := addressLines(p.Attorney)
	result, err := s.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET atty_organization = $2, atty_name = $3, atty_address_line_one = $4,
		    atty_address_line_two = $5, atty_phone = $6, atty_bar_id = $7,
		    expungement_template = $8, sealing_template = $9, updated_at = $10
		WHERE user_id = $1
	`,
		uuid.UUID(p.UserID), p.Attorney.Organization, p.Attorney.FullName,
		lineOne, lineTwo, p.Attorney.OrganizationPhone, p.Attorney.BarID,
		uuid.UUID(p.ExpungementTemplate), uuid.UUID(p.SealingTemplate), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func addressLines(attorney crecord.Attorney) (string, string) {
	if attorney.Address == nil {
		return "", ""
	}
	return attorney.Address.LineOne, attorney.Address.CityStateZip
}
