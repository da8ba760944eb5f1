package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type OwnerSeeder struct {
	Owner Owner
}

func (OwnerSeeder) Name() string { return "owner" }

// Run creates the owner account with its profile and links. An existing
// account keeps its password; only missing rows are added.
func (s OwnerSeeder) Run(ctx context.Context, db database.DB) error {
	o := s.Owner
	o.Username = strings.TrimSpace(o.Username)
	if o.Username == "" || o.Password == "" {
		return errors.New("owner username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	var userID int64
	err = tx.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		 RETURNING id`,
		o.Username,
		string(hash),
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	var profileID int64
	err = tx.QueryRow(
		ctx,
		`INSERT INTO profile (user_id, name, email, education) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id`,
		userID,
		o.Name,
		o.Email,
		o.Education,
	).Scan(&profileID)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO profile_links (profile_id, github, linkedin, portfolio) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (profile_id) DO NOTHING`,
		profileID,
		o.GitHub,
		o.LinkedIn,
		o.Website,
	)
	if err != nil {
		return fmt.Errorf("insert profile links: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

var defaultSkills = []string{
	"JavaScript",
	"TypeScript",
	"React",
	"Node.js",
	"PostgreSQL",
	"Database Management System",
	"Data Structures And Algorithms",
	"Full Stack Web Development",
	"Python",
	"Express.js",
	"Go",
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range defaultSkills {
		if _, err := tx.Exec(ctx, `INSERT INTO skills (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type seedProject struct {
	Title       string
	Description string
	URL         string
	Skills      []string
}

var defaultProjects = []seedProject{
	{Title: "Monexa", Description: "A single place to manage all your businesses", Skills: []string{"React", "Node.js", "PostgreSQL"}},
	{Title: "AI Movie Recommender", Description: "Hybrid content and collaborative filtering based movie recommendation web app", Skills: []string{"Python", "React"}},
	{Title: "Billmate", Description: "A bill management system", Skills: []string{"TypeScript", "Express.js", "PostgreSQL"}},
	{Title: "Dream Island", Description: "An island vacation planning app", Skills: []string{"JavaScript", "React"}},
	{Title: "Trading System", Description: "A stock trading simulation platform", Skills: []string{"Go", "PostgreSQL", "Data Structures And Algorithms"}},
}

type ProjectsSeeder struct{}

func (ProjectsSeeder) Name() string { return "projects" }

// Run inserts each project once, keyed by title, with its link and skills.
func (ProjectsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, p := range defaultProjects {
		var projectID int64
		err := tx.QueryRow(ctx, `SELECT id FROM projects WHERE title = $1 ORDER BY id LIMIT 1`, p.Title).Scan(&projectID)
		switch {
		case database.IsNoRows(err):
			err = tx.QueryRow(
				ctx,
				`INSERT INTO projects (title, description) VALUES ($1, $2) RETURNING id`,
				p.Title,
				p.Description,
			).Scan(&projectID)
			if err != nil {
				return fmt.Errorf("insert project %q: %w", p.Title, err)
			}
		case err != nil:
			return err
		}

		if p.URL != "" {
			if _, err := tx.Exec(ctx, `INSERT INTO project_links (project_id, url) VALUES ($1, $2) ON CONFLICT (project_id) DO NOTHING`, projectID, p.URL); err != nil {
				return err
			}
		}

		for _, skill := range p.Skills {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO project_skills (project_id, skill_id)
				 SELECT $1, id FROM skills WHERE name = $2
				 ON CONFLICT (project_id, skill_id) DO NOTHING`,
				projectID,
				skill,
			)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type WorkExperienceSeeder struct {
	Username string
}

func (WorkExperienceSeeder) Name() string { return "work_experience" }

// Run adds a sample entry only when the owner has no work experience yet.
func (s WorkExperienceSeeder) Run(ctx context.Context, db database.DB) error {
	var profileID int64
	err := db.QueryRow(
		ctx,
		`SELECT p.id FROM profile p JOIN users u ON u.id = p.user_id WHERE u.username = $1`,
		strings.TrimSpace(s.Username),
	).Scan(&profileID)
	if err != nil {
		if database.IsNoRows(err) {
			return nil
		}
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO work_experience (profile_id, company, role, start_date, end_date, description)
		 SELECT $1, 'Acme Corp', 'Software Engineer', DATE '2024-01-15', NULL, 'Building internal tools and APIs'
		 WHERE NOT EXISTS (SELECT 1 FROM work_experience WHERE profile_id = $1)`,
		profileID,
	)
	return err
}
