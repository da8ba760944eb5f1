// Package memory keeps every portfolio table in process memory. It honours
// the same uniqueness and cascade rules as the Postgres schema and backs
// tests and local runs without a database.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/domain/user"
)

type pair struct {
	projectID int64
	skillID   int64
}

type Store struct {
	mu  sync.RWMutex
	seq int64

	users         map[int64]user.User
	profiles      map[int64]profile.Profile
	profileLinks  map[int64]profile.Links // keyed by profile id
	projects      map[int64]project.Project
	projectLinks  map[int64]project.Link // keyed by project id
	skills        map[int64]skill.Skill
	projectSkills map[pair]struct{}
	experiences   map[int64]experience.WorkExperience
}

func New() *Store {
	return &Store{
		users:         map[int64]user.User{},
		profiles:      map[int64]profile.Profile{},
		profileLinks:  map[int64]profile.Links{},
		projects:      map[int64]project.Project{},
		projectLinks:  map[int64]project.Link{},
		skills:        map[int64]skill.Skill{},
		projectSkills: map[pair]struct{}{},
		experiences:   map[int64]experience.WorkExperience{},
	}
}

func (s *Store) Users() *Users                   { return &Users{s} }
func (s *Store) Profiles() *Profiles             { return &Profiles{s} }
func (s *Store) ProfileLinks() *ProfileLinks     { return &ProfileLinks{s} }
func (s *Store) Projects() *Projects             { return &Projects{s} }
func (s *Store) ProjectLinks() *ProjectLinks     { return &ProjectLinks{s} }
func (s *Store) Skills() *Skills                 { return &Skills{s} }
func (s *Store) ProjectSkills() *ProjectSkills   { return &ProjectSkills{s} }
func (s *Store) WorkExperience() *WorkExperience { return &WorkExperience{s} }

// nextID must be called with mu held.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) usernameTaken(username string) bool {
	for _, u := range s.users {
		if u.Username == username {
			return true
		}
	}
	return false
}

func (s *Store) profileByUser(userID int64) (profile.Profile, bool) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return profile.Profile{}, false
}

func (s *Store) insertUser(username, hash string) user.User {
	u := user.User{ID: s.nextID(), Username: username, PasswordHash: hash, CreatedAt: time.Now().UTC()}
	s.users[u.ID] = u
	return u
}

func (s *Store) insertProfile(userID int64, f profile.Fields) profile.Profile {
	p := profile.Profile{ID: s.nextID(), UserID: userID, Name: f.Name, Email: f.Email, Education: f.Education}
	s.profiles[p.ID] = p
	return p
}

func (s *Store) withURL(p project.Project) project.Project {
	if l, ok := s.projectLinks[p.ID]; ok {
		url := l.URL
		p.ProjectURL = &url
	} else {
		p.ProjectURL = nil
	}
	return p
}

func (s *Store) sortedProjects() []project.Project {
	out := make([]project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, s.withURL(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) projectHasSkillLike(projectID int64, needle string) bool {
	for k := range s.projectSkills {
		if k.projectID != projectID {
			continue
		}
		if sk, ok := s.skills[k.skillID]; ok && containsFold(sk.Name, needle) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sortSkillsByName(items []skill.Skill) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
