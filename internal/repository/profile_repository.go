package repository

import (
	"context"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/profile"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, name, email, COALESCE(education, '')`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID int64) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profile WHERE user_id = $1`, userID))
}

func (r *PostgresProfileRepository) IDByUserID(ctx context.Context, userID int64) (int64, error) {
	var id int64
	if err := r.db.QueryRow(ctx, `SELECT id FROM profile WHERE user_id = $1`, userID).Scan(&id); err != nil {
		if database.IsNoRows(err) {
			return 0, profile.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, userID int64, fields profile.Fields) (profile.Profile, error) {
	p, err := insertProfile(ctx, r.db, userID, fields)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return profile.Profile{}, profile.ErrAlreadyExists
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, profileID int64, fields profile.Fields) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(
		ctx,
		`UPDATE profile SET name = $1, email = $2, education = NULLIF($3, '')
		 WHERE id = $4
		 RETURNING `+profileColumns,
		fields.Name,
		fields.Email,
		fields.Education,
		profileID,
	))
}

func insertProfile(ctx context.Context, q database.Querier, userID int64, fields profile.Fields) (profile.Profile, error) {
	var p profile.Profile
	err := q.QueryRow(
		ctx,
		`INSERT INTO profile (user_id, name, email, education) VALUES ($1, $2, $3, NULLIF($4, ''))
		 RETURNING `+profileColumns,
		userID,
		fields.Name,
		fields.Email,
		fields.Education,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Education)
	return p, err
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Education); err != nil {
		if database.IsNoRows(err) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

type PostgresProfileLinksRepository struct {
	db database.DB
}

func NewPostgresProfileLinksRepository(db database.DB) *PostgresProfileLinksRepository {
	return &PostgresProfileLinksRepository{db: db}
}

const linksColumns = `id, profile_id, COALESCE(github, ''), COALESCE(linkedin, ''), COALESCE(portfolio, '')`

func (r *PostgresProfileLinksRepository) GetByProfileID(ctx context.Context, profileID int64) (profile.Links, error) {
	var l profile.Links
	err := r.db.QueryRow(ctx, `SELECT `+linksColumns+` FROM profile_links WHERE profile_id = $1`, profileID).
		Scan(&l.ID, &l.ProfileID, &l.GitHub, &l.LinkedIn, &l.Portfolio)
	if err != nil {
		if database.IsNoRows(err) {
			return profile.Links{}, profile.ErrNotFound
		}
		return profile.Links{}, err
	}
	return l, nil
}

// Upsert relies on the unique profile_id; xmax = 0 only for freshly
// inserted tuples.
func (r *PostgresProfileLinksRepository) Upsert(ctx context.Context, profileID int64, fields profile.LinkFields) (profile.Links, bool, error) {
	var l profile.Links
	var inserted bool
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO profile_links (profile_id, github, linkedin, portfolio) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (profile_id) DO UPDATE
		 SET github = EXCLUDED.github, linkedin = EXCLUDED.linkedin, portfolio = EXCLUDED.portfolio
		 RETURNING `+linksColumns+`, (xmax = 0)`,
		profileID,
		fields.GitHub,
		fields.LinkedIn,
		fields.Portfolio,
	).Scan(&l.ID, &l.ProfileID, &l.GitHub, &l.LinkedIn, &l.Portfolio, &inserted)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return profile.Links{}, false, profile.ErrNotFound
		}
		return profile.Links{}, false, err
	}
	return l, inserted, nil
}
