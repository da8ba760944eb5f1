package repository

import (
	"context"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/experience"
)

type PostgresWorkExperienceRepository struct {
	db database.DB
}

func NewPostgresWorkExperienceRepository(db database.DB) *PostgresWorkExperienceRepository {
	return &PostgresWorkExperienceRepository{db: db}
}

const experienceColumns = `id, profile_id, company, role, start_date, end_date, COALESCE(description, '')`

func (r *PostgresWorkExperienceRepository) ListByProfile(ctx context.Context, profileID int64) ([]experience.WorkExperience, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+experienceColumns+` FROM work_experience WHERE profile_id = $1 ORDER BY start_date DESC, id DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]experience.WorkExperience, 0)
	for rows.Next() {
		w, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresWorkExperienceRepository) GetByID(ctx context.Context, id int64) (experience.WorkExperience, error) {
	return scanExperience(r.db.QueryRow(ctx, `SELECT `+experienceColumns+` FROM work_experience WHERE id = $1`, id))
}

func (r *PostgresWorkExperienceRepository) OwnerProfileID(ctx context.Context, id int64) (int64, error) {
	var profileID int64
	if err := r.db.QueryRow(ctx, `SELECT profile_id FROM work_experience WHERE id = $1`, id).Scan(&profileID); err != nil {
		if database.IsNoRows(err) {
			return 0, experience.ErrNotFound
		}
		return 0, err
	}
	return profileID, nil
}

func (r *PostgresWorkExperienceRepository) Create(ctx context.Context, profileID int64, f experience.Fields) (experience.WorkExperience, error) {
	return scanExperience(r.db.QueryRow(
		ctx,
		`INSERT INTO work_experience (profile_id, company, role, start_date, end_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+experienceColumns,
		profileID,
		f.Company,
		f.Role,
		f.StartDate.Time,
		endDateArg(f.EndDate),
		f.Description,
	))
}

func (r *PostgresWorkExperienceRepository) Update(ctx context.Context, id int64, f experience.Fields) (experience.WorkExperience, error) {
	return scanExperience(r.db.QueryRow(
		ctx,
		`UPDATE work_experience
		 SET company = $1, role = $2, start_date = $3, end_date = $4, description = $5
		 WHERE id = $6
		 RETURNING `+experienceColumns,
		f.Company,
		f.Role,
		f.StartDate.Time,
		endDateArg(f.EndDate),
		f.Description,
		id,
	))
}

func (r *PostgresWorkExperienceRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM work_experience WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return experience.ErrNotFound
	}
	return nil
}

func endDateArg(d *experience.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func scanExperience(row database.Row) (experience.WorkExperience, error) {
	var (
		w     experience.WorkExperience
		start time.Time
		end   *time.Time
	)
	if err := row.Scan(&w.ID, &w.ProfileID, &w.Company, &w.Role, &start, &end, &w.Description); err != nil {
		if database.IsNoRows(err) {
			return experience.WorkExperience{}, experience.ErrNotFound
		}
		if database.IsInvalidInput(err) {
			return experience.WorkExperience{}, experience.ErrInvalidDate
		}
		return experience.WorkExperience{}, err
	}
	w.StartDate = experience.NewDate(start)
	if end != nil {
		d := experience.NewDate(*end)
		w.EndDate = &d
	}
	return w, nil
}
