package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/minhvu/devconnect/internal/domain/profile"
	"github.com/minhvu/devconnect/pkg/apperror"
	"github.com/minhvu/devconnect/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postgresProfileRepo keeps the whole profile document on one row: scalars as
// columns, skills/social/experience/education as JSONB. Sub-collection writes
// replace a single column on that row, so two concurrent edits for the same
// owner are serialized by Postgres row-level write atomicity; callers that
// read-modify-write still race at the document level (last write wins per
// column).
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

const profileColumns = `
	p.owner_id, p.company, p.location, p.website, p.bio, p.status,
	p.github_username, p.skills, p.social, p.experience, p.education,
	p.updated_at, COALESCE(u.name, ''), COALESCE(u.avatar_url, '')
`

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.OwnerID,
		&p.Company,
		&p.Location,
		&p.Website,
		&p.Bio,
		&p.Status,
		&p.GithubUsername,
		&skillsBytes,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.UpdatedAt,
		&p.UserName,
		&p.UserAvatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = profile.SocialLinks{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}

func (r *postgresProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles p
		JOIN users u ON u.id = p.owner_id
		WHERE p.owner_id = $1
	`, profileColumns)

	return r.scanProfile(r.db.QueryRow(ctx, query, ownerID))
}

func (r *postgresProfileRepo) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	builder := psql.Select(
		"p.owner_id", "p.company", "p.location", "p.website", "p.bio", "p.status",
		"p.github_username", "p.skills", "p.social", "p.experience", "p.education",
		"p.updated_at", "COALESCE(u.name, '')", "COALESCE(u.avatar_url, '')",
	).
		From("profiles p").
		Join("users u ON u.id = p.owner_id").
		OrderBy("p.updated_at DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}

	return profiles, nil
}

// Upsert writes every scalar field plus skills and social. It never touches
// the experience/education columns: a profile re-submit must not wipe the
// sub-collections.
func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social", err)
	}

	query := `
		INSERT INTO profiles (owner_id, company, location, website, bio, status,
			github_username, skills, social, experience, education, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '[]', '[]', NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.OwnerID, p.Company, p.Location, p.Website, p.Bio, p.Status,
		p.GithubUsername, skillsBytes, socialBytes,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) ReplaceExperience(ctx context.Context, ownerID uuid.UUID, entries []profile.Experience) error {
	return r.replaceColumn(ctx, ownerID, "experience", entries)
}

func (r *postgresProfileRepo) ReplaceEducation(ctx context.Context, ownerID uuid.UUID, entries []profile.Education) error {
	return r.replaceColumn(ctx, ownerID, "education", entries)
}

func (r *postgresProfileRepo) replaceColumn(ctx context.Context, ownerID uuid.UUID, column string, entries any) error {
	entriesBytes, err := json.Marshal(entries)
	if err != nil {
		return apperror.NewInternal("failed to marshal "+column, err)
	}

	// column is one of the two fixed names above, never caller input.
	query := fmt.Sprintf(`UPDATE profiles SET %s = $2, updated_at = NOW() WHERE owner_id = $1`, column)
	cmdTag, err := r.db.Exec(ctx, query, ownerID, entriesBytes)
	if err != nil {
		return apperror.NewInternal("failed to update "+column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE owner_id = $1`, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
