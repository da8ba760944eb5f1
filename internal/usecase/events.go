package usecase

import (
	"time"

	"go.uber.org/zap"
)

// Resources named in change events.
const (
	ResourceProfile        = "profile"
	ResourceProfileLinks   = "profile_links"
	ResourceProject        = "projects"
	ResourceProjectLink    = "project_links"
	ResourceSkill          = "skills"
	ResourceProjectSkill   = "project_skills"
	ResourceWorkExperience = "work_experience"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeNotifier is told about every committed mutation.
type ChangeNotifier interface {
	Notify(resource, action string, id int64)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, int64) {}

// Deps bundles the optional collaborators shared by all usecases. Nil
// fields fall back to no-ops.
type Deps struct {
	Cache    PublicCache
	CacheTTL time.Duration
	Notifier ChangeNotifier
	Logger   *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = nopCache{}
	}
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}
