package app

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/database/migration"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/domain/user"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/pkg/jwt"
	"portfolio-api/internal/pkg/logger"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/repository/memory"
	"portfolio-api/internal/usecase"
	"portfolio-api/internal/ws"
	"portfolio-api/migrations"

	"go.uber.org/zap"
)

// DatabaseWait bounds how long startup waits for Postgres to accept pings.
const DatabaseWait = 30 * time.Second

type Repositories struct {
	Users          user.Repository
	Profiles       profile.Repository
	ProfileLinks   profile.LinksRepository
	Projects       project.Repository
	ProjectLinks   project.LinkRepository
	Skills         skill.Repository
	ProjectSkills  skill.ProjectSkillRepository
	WorkExperience experience.Repository
}

func PostgresRepositories(db database.DB) Repositories {
	return Repositories{
		Users:          repository.NewPostgresUserRepository(db),
		Profiles:       repository.NewPostgresProfileRepository(db),
		ProfileLinks:   repository.NewPostgresProfileLinksRepository(db),
		Projects:       repository.NewPostgresProjectRepository(db),
		ProjectLinks:   repository.NewPostgresProjectLinkRepository(db),
		Skills:         repository.NewPostgresSkillRepository(db),
		ProjectSkills:  repository.NewPostgresProjectSkillRepository(db),
		WorkExperience: repository.NewPostgresWorkExperienceRepository(db),
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Users:          s.Users(),
		Profiles:       s.Profiles(),
		ProfileLinks:   s.ProfileLinks(),
		Projects:       s.Projects(),
		ProjectLinks:   s.ProjectLinks(),
		Skills:         s.Skills(),
		ProjectSkills:  s.ProjectSkills(),
		WorkExperience: s.WorkExperience(),
	}
}

type Usecases struct {
	Auth           usecase.AuthUsecase
	Profile        usecase.ProfileUsecase
	WorkExperience usecase.WorkExperienceUsecase
	Project        usecase.ProjectUsecase
	ProjectLink    usecase.ProjectLinkUsecase
	Skill          usecase.SkillUsecase
	ProjectSkill   usecase.ProjectSkillUsecase
	Status         usecase.StatusUsecase
}

func NewUsecases(cfg config.Config, repos Repositories, tokens jwt.Service, deps usecase.Deps) Usecases {
	owner := cfg.Portfolio.PublicOwnerUserID
	ownership := usecase.NewOwnership(repos.Profiles, repos.WorkExperience)

	return Usecases{
		Auth:           usecase.NewAuthUsecase(repos.Users, repos.Profiles, tokens, owner, deps.Logger),
		Profile:        usecase.NewProfileUsecase(repos.Profiles, repos.ProfileLinks, ownership, owner, deps),
		WorkExperience: usecase.NewWorkExperienceUsecase(repos.WorkExperience, repos.Profiles, ownership, owner, deps),
		Project:        usecase.NewProjectUsecase(repos.Projects, deps),
		ProjectLink:    usecase.NewProjectLinkUsecase(repos.ProjectLinks, deps),
		Skill:          usecase.NewSkillUsecase(repos.Skills, deps),
		ProjectSkill:   usecase.NewProjectSkillUsecase(repos.ProjectSkills, deps),
	}
}

type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil when the container runs on the in-memory store.
	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service

	Repos    Repositories
	Usecases Usecases
}

// NewContainer connects to Postgres, applies migrations when enabled and
// verifies the ownership columns before wiring the usecases.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	db, err := dbpostgres.Connect(ctx, cfg.Database, DatabaseWait, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Portfolio.AutoMigrate {
		r := migration.Runner{Dir: cfg.Portfolio.MigrationsDir, FS: migrations.FS, Logger: log}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	if err := seeder.EnsureOwnershipSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewContainerFromDB(ctx, cfg, log, db), nil
}

// NewContainerFromDB wires the usecases over an open, migrated database.
func NewContainerFromDB(ctx context.Context, cfg config.Config, log *zap.Logger, db database.DB) *Container {
	log = logger.OrNop(log)
	return build(cfg, log, db, PostgresRepositories(db), cache.NewRedis(ctx, cfg.Redis, log))
}

// NewMemoryContainer wires the usecases over an in-memory store with the
// cache disabled.
func NewMemoryContainer(cfg config.Config, log *zap.Logger, store *memory.Store) *Container {
	if store == nil {
		store = memory.New()
	}
	return build(cfg, logger.OrNop(log), nil, MemoryRepositories(store), cache.NewRedisWithClient(nil, cfg.Redis.TTL, log))
}

func build(cfg config.Config, log *zap.Logger, db database.DB, repos Repositories, rc *cache.Redis) *Container {
	hub := ws.NewHub(log)
	tokens := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	deps := usecase.Deps{
		Cache:    rc,
		CacheTTL: rc.TTL(),
		Notifier: ws.NewNotifier(hub, log),
		Logger:   log,
	}

	uc := NewUsecases(cfg, repos, tokens, deps)
	var dbPing usecase.Pinger
	if db != nil {
		dbPing = db
	}
	uc.Status = usecase.NewStatusUsecase(repos.Projects, repos.Skills, dbPing, rc, hub)

	return &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Cache:    rc,
		Hub:      hub,
		JWT:      tokens,
		Repos:    repos,
		Usecases: uc,
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
