package repository

import (
	"context"
	"strconv"
	"strings"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/project"
)

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectSelect = `SELECT p.id, p.title, COALESCE(p.description, ''), pl.url
FROM projects p
LEFT JOIN project_links pl ON pl.project_id = p.id`

// likePattern escapes LIKE metacharacters so user input matches literally.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func buildProjectWhere(f project.ListFilter) (string, []any) {
	var conds []string
	var args []any

	if s := strings.TrimSpace(f.Skill); s != "" {
		args = append(args, likePattern(s))
		conds = append(conds, `EXISTS (
	SELECT 1 FROM project_skills ps
	JOIN skills s ON s.id = ps.skill_id
	WHERE ps.project_id = p.id AND s.name ILIKE $`+strconv.Itoa(len(args))+`)`)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, likePattern(q))
		n := strconv.Itoa(len(args))
		conds = append(conds, `(p.title ILIKE $`+n+` OR p.description ILIKE $`+n+`)`)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// pageClause renders LIMIT and OFFSET for the filter. Placeholders continue
// after the n arguments already bound by the WHERE clause.
func pageClause(f project.ListFilter, n int) (string, []any) {
	var (
		clause string
		args   []any
	)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		clause += ` LIMIT $` + strconv.Itoa(n+len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		clause += ` OFFSET $` + strconv.Itoa(n+len(args))
	}
	return clause, args
}

func (r *PostgresProjectRepository) List(ctx context.Context, f project.ListFilter) ([]project.Project, int, error) {
	where, args := buildProjectWhere(f)

	page, pageArgs := pageClause(f, len(args))
	query := projectSelect + where + ` ORDER BY p.id ASC` + page

	rows, err := r.db.Query(ctx, query, append(append([]any{}, args...), pageArgs...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 && f.Offset <= 0 {
		return out, len(out), nil
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64) (project.Project, error) {
	return scanProject(r.db.QueryRow(ctx, projectSelect+` WHERE p.id = $1`, id))
}

func (r *PostgresProjectRepository) Create(ctx context.Context, fields project.Fields) (project.Project, error) {
	var p project.Project
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO projects (title, description) VALUES ($1, $2) RETURNING id, title, description`,
		fields.Title,
		fields.Description,
	).Scan(&p.ID, &p.Title, &p.Description)
	return p, err
}

func (r *PostgresProjectRepository) Update(ctx context.Context, id int64, fields project.Fields) (project.Project, error) {
	return scanProject(r.db.QueryRow(
		ctx,
		`WITH updated AS (
			UPDATE projects SET title = $1, description = $2 WHERE id = $3
			RETURNING id, title, description
		)
		SELECT u.id, u.title, u.description, pl.url
		FROM updated u
		LEFT JOIN project_links pl ON pl.project_id = u.id`,
		fields.Title,
		fields.Description,
		id,
	))
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return project.ErrNotFound
	}
	return nil
}

func scanProject(row database.Row) (project.Project, error) {
	var p project.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ProjectURL); err != nil {
		if database.IsNoRows(err) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, err
	}
	return p, nil
}

type PostgresProjectLinkRepository struct {
	db database.DB
}

func NewPostgresProjectLinkRepository(db database.DB) *PostgresProjectLinkRepository {
	return &PostgresProjectLinkRepository{db: db}
}

func (r *PostgresProjectLinkRepository) List(ctx context.Context) ([]project.Link, error) {
	rows, err := r.db.Query(ctx, `SELECT id, project_id, url FROM project_links ORDER BY project_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]project.Link, 0)
	for rows.Next() {
		var l project.Link
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.URL); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProjectLinkRepository) GetByProjectID(ctx context.Context, projectID int64) (project.Link, error) {
	return scanProjectLink(r.db.QueryRow(ctx, `SELECT id, project_id, url FROM project_links WHERE project_id = $1`, projectID))
}

func (r *PostgresProjectLinkRepository) Create(ctx context.Context, projectID int64, url string) (project.Link, error) {
	l, err := scanProjectLink(r.db.QueryRow(
		ctx,
		`INSERT INTO project_links (project_id, url) VALUES ($1, $2) RETURNING id, project_id, url`,
		projectID,
		url,
	))
	switch {
	case database.IsUniqueViolation(err):
		return project.Link{}, project.ErrLinkExists
	case database.IsForeignKeyViolation(err):
		return project.Link{}, project.ErrNotFound
	}
	return l, err
}

func (r *PostgresProjectLinkRepository) Upsert(ctx context.Context, projectID int64, url string) (project.Link, error) {
	l, err := scanProjectLink(r.db.QueryRow(
		ctx,
		`INSERT INTO project_links (project_id, url) VALUES ($1, $2)
		 ON CONFLICT (project_id) DO UPDATE SET url = EXCLUDED.url
		 RETURNING id, project_id, url`,
		projectID,
		url,
	))
	if database.IsForeignKeyViolation(err) {
		return project.Link{}, project.ErrNotFound
	}
	return l, err
}

func (r *PostgresProjectLinkRepository) Delete(ctx context.Context, projectID int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM project_links WHERE project_id = $1`, projectID)
	if err != nil {
		return err
	}
	if n == 0 {
		return project.ErrLinkNotFound
	}
	return nil
}

func scanProjectLink(row database.Row) (project.Link, error) {
	var l project.Link
	if err := row.Scan(&l.ID, &l.ProjectID, &l.URL); err != nil {
		if database.IsNoRows(err) {
			return project.Link{}, project.ErrLinkNotFound
		}
		return project.Link{}, err
	}
	return l, nil
}
