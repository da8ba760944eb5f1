package repository

import (
	"context"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/skill"
)

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) Top(ctx context.Context) ([]skill.Usage, error) {
	rows, err := r.db.Query(ctx, `
SELECT s.name, COUNT(*)::int AS count
FROM skills s
JOIN project_skills ps ON s.id = ps.skill_id
GROUP BY s.name
ORDER BY count DESC, s.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Usage, 0)
	for rows.Next() {
		var u skill.Usage
		if err := rows.Scan(&u.Name, &u.Count); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id int64) (skill.Skill, error) {
	return scanSkill(r.db.QueryRow(ctx, `SELECT id, name FROM skills WHERE id = $1`, id))
}

func (r *PostgresSkillRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n)
	return n, err
}

func (r *PostgresSkillRepository) Create(ctx context.Context, name string) (skill.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, `INSERT INTO skills (name) VALUES ($1) RETURNING id, name`, name))
	if database.IsUniqueViolation(err) {
		return skill.Skill{}, skill.ErrNameTaken
	}
	return s, err
}

func (r *PostgresSkillRepository) Update(ctx context.Context, id int64, name string) (skill.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, `UPDATE skills SET name = $1 WHERE id = $2 RETURNING id, name`, name, id))
	if database.IsUniqueViolation(err) {
		return skill.Skill{}, skill.ErrNameTaken
	}
	return s, err
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return skill.ErrNotFound
	}
	return nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		if database.IsNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type PostgresProjectSkillRepository struct {
	db database.DB
}

func NewPostgresProjectSkillRepository(db database.DB) *PostgresProjectSkillRepository {
	return &PostgresProjectSkillRepository{db: db}
}

func (r *PostgresProjectSkillRepository) ListByProject(ctx context.Context, projectID int64) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `
SELECT s.id, s.name
FROM skills s
JOIN project_skills ps ON s.id = ps.skill_id
WHERE ps.project_id = $1
ORDER BY s.name ASC`, projectID)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresProjectSkillRepository) Add(ctx context.Context, projectID, skillID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO project_skills (project_id, skill_id) VALUES ($1, $2)`, projectID, skillID)
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return skill.ErrAlreadyAssociated
	case database.IsForeignKeyViolation(err):
		return skill.ErrProjectOrSkillNotFound
	default:
		return err
	}
}

func (r *PostgresProjectSkillRepository) Remove(ctx context.Context, projectID, skillID int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM project_skills WHERE project_id = $1 AND skill_id = $2`, projectID, skillID)
	if err != nil {
		return err
	}
	if n == 0 {
		return skill.ErrNotAssociated
	}
	return nil
}
