package memory

import (
	"context"
	"sort"
	"strings"

	"portfolio-api/internal/domain/experience"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/project"
	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/domain/user"
)

var (
	_ user.Repository              = (*Users)(nil)
	_ profile.Repository           = (*Profiles)(nil)
	_ profile.LinksRepository      = (*ProfileLinks)(nil)
	_ project.Repository           = (*Projects)(nil)
	_ project.LinkRepository       = (*ProjectLinks)(nil)
	_ skill.Repository             = (*Skills)(nil)
	_ skill.ProjectSkillRepository = (*ProjectSkills)(nil)
	_ experience.Repository        = (*WorkExperience)(nil)
)

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, username, passwordHash string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usernameTaken(username) {
		return user.User{}, user.ErrUsernameTaken
	}
	return r.s.insertUser(username, passwordHash), nil
}

func (r *Users) CreateWithProfile(_ context.Context, username, passwordHash string, f profile.Fields) (user.User, profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.usernameTaken(username) {
		return user.User{}, profile.Profile{}, user.ErrUsernameTaken
	}
	u := r.s.insertUser(username, passwordHash)
	return u, r.s.insertProfile(u.ID, f), nil
}

func (r *Users) GetByID(_ context.Context, id int64) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

type Profiles struct{ s *Store }

func (r *Profiles) GetByUserID(_ context.Context, userID int64) (profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profileByUser(userID)
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (r *Profiles) IDByUserID(ctx context.Context, userID int64) (int64, error) {
	p, err := r.GetByUserID(ctx, userID)
	return p.ID, err
}

func (r *Profiles) Create(_ context.Context, userID int64, f profile.Fields) (profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profileByUser(userID); ok {
		return profile.Profile{}, profile.ErrAlreadyExists
	}
	return r.s.insertProfile(userID, f), nil
}

func (r *Profiles) Update(_ context.Context, profileID int64, f profile.Fields) (profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[profileID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	p.Name, p.Email, p.Education = f.Name, f.Email, f.Education
	r.s.profiles[profileID] = p
	return p, nil
}

type ProfileLinks struct{ s *Store }

func (r *ProfileLinks) GetByProfileID(_ context.Context, profileID int64) (profile.Links, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.profileLinks[profileID]
	if !ok {
		return profile.Links{}, profile.ErrNotFound
	}
	return l, nil
}

func (r *ProfileLinks) Upsert(_ context.Context, profileID int64, f profile.LinkFields) (profile.Links, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[profileID]; !ok {
		return profile.Links{}, false, profile.ErrNotFound
	}
	l, exists := r.s.profileLinks[profileID]
	if !exists {
		l = profile.Links{ID: r.s.nextID(), ProfileID: profileID}
	}
	l.GitHub, l.LinkedIn, l.Portfolio = f.GitHub, f.LinkedIn, f.Portfolio
	r.s.profileLinks[profileID] = l
	return l, !exists, nil
}

type Projects struct{ s *Store }

func (r *Projects) List(_ context.Context, f project.ListFilter) ([]project.Project, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	skillNeedle := strings.TrimSpace(f.Skill)
	query := strings.TrimSpace(f.Query)

	matched := make([]project.Project, 0)
	for _, p := range r.s.sortedProjects() {
		if skillNeedle != "" && !r.s.projectHasSkillLike(p.ID, skillNeedle) {
			continue
		}
		if query != "" && !containsFold(p.Title, query) && !containsFold(p.Description, query) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := min(max(f.Offset, 0), total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	return matched[start:end], total, nil
}

func (r *Projects) GetByID(_ context.Context, id int64) (project.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	return r.s.withURL(p), nil
}

func (r *Projects) Create(_ context.Context, f project.Fields) (project.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := project.Project{ID: r.s.nextID(), Title: f.Title, Description: f.Description}
	r.s.projects[p.ID] = p
	return p, nil
}

func (r *Projects) Update(_ context.Context, id int64, f project.Fields) (project.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	p.Title, p.Description = f.Title, f.Description
	r.s.projects[id] = p
	return r.s.withURL(p), nil
}

func (r *Projects) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return project.ErrNotFound
	}
	delete(r.s.projects, id)
	delete(r.s.projectLinks, id)
	for k := range r.s.projectSkills {
		if k.projectID == id {
			delete(r.s.projectSkills, k)
		}
	}
	return nil
}

type ProjectLinks struct{ s *Store }

func (r *ProjectLinks) List(_ context.Context) ([]project.Link, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]project.Link, 0, len(r.s.projectLinks))
	for _, l := range r.s.projectLinks {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (r *ProjectLinks) GetByProjectID(_ context.Context, projectID int64) (project.Link, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.projectLinks[projectID]
	if !ok {
		return project.Link{}, project.ErrLinkNotFound
	}
	return l, nil
}

func (r *ProjectLinks) Create(_ context.Context, projectID int64, url string) (project.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projectLinks[projectID]; ok {
		return project.Link{}, project.ErrLinkExists
	}
	if _, ok := r.s.projects[projectID]; !ok {
		return project.Link{}, project.ErrNotFound
	}
	l := project.Link{ID: r.s.nextID(), ProjectID: projectID, URL: url}
	r.s.projectLinks[projectID] = l
	return l, nil
}

func (r *ProjectLinks) Upsert(_ context.Context, projectID int64, url string) (project.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[projectID]; !ok {
		return project.Link{}, project.ErrNotFound
	}
	l, ok := r.s.projectLinks[projectID]
	if !ok {
		l = project.Link{ID: r.s.nextID(), ProjectID: projectID}
	}
	l.URL = url
	r.s.projectLinks[projectID] = l
	return l, nil
}

func (r *ProjectLinks) Delete(_ context.Context, projectID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projectLinks[projectID]; !ok {
		return project.ErrLinkNotFound
	}
	delete(r.s.projectLinks, projectID)
	return nil
}

type Skills struct{ s *Store }

func (r *Skills) List(_ context.Context) ([]skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]skill.Skill, 0, len(r.s.skills))
	for _, sk := range r.s.skills {
		out = append(out, sk)
	}
	sortSkillsByName(out)
	return out, nil
}

func (r *Skills) Top(_ context.Context) ([]skill.Usage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[string]int{}
	for k := range r.s.projectSkills {
		if sk, ok := r.s.skills[k.skillID]; ok {
			counts[sk.Name]++
		}
	}
	out := make([]skill.Usage, 0, len(counts))
	for name, n := range counts {
		out = append(out, skill.Usage{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *Skills) GetByID(_ context.Context, id int64) (skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sk, ok := r.s.skills[id]
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	return sk, nil
}

func (r *Skills) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.skills), nil
}

func (r *Skills) nameTaken(name string, except int64) bool {
	for id, sk := range r.s.skills {
		if id != except && sk.Name == name {
			return true
		}
	}
	return false
}

func (r *Skills) Create(_ context.Context, name string) (skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(name, 0) {
		return skill.Skill{}, skill.ErrNameTaken
	}
	sk := skill.Skill{ID: r.s.nextID(), Name: name}
	r.s.skills[sk.ID] = sk
	return sk, nil
}

func (r *Skills) Update(_ context.Context, id int64, name string) (skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sk, ok := r.s.skills[id]
	if !ok {
		return skill.Skill{}, skill.ErrNotFound
	}
	if r.nameTaken(name, id) {
		return skill.Skill{}, skill.ErrNameTaken
	}
	sk.Name = name
	r.s.skills[id] = sk
	return sk, nil
}

func (r *Skills) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.skills[id]; !ok {
		return skill.ErrNotFound
	}
	delete(r.s.skills, id)
	for k := range r.s.projectSkills {
		if k.skillID == id {
			delete(r.s.projectSkills, k)
		}
	}
	return nil
}

type ProjectSkills struct{ s *Store }

func (r *ProjectSkills) ListByProject(_ context.Context, projectID int64) ([]skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]skill.Skill, 0)
	for k := range r.s.projectSkills {
		if k.projectID != projectID {
			continue
		}
		if sk, ok := r.s.skills[k.skillID]; ok {
			out = append(out, sk)
		}
	}
	sortSkillsByName(out)
	return out, nil
}

func (r *ProjectSkills) Add(_ context.Context, projectID, skillID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{projectID: projectID, skillID: skillID}
	if _, ok := r.s.projectSkills[k]; ok {
		return skill.ErrAlreadyAssociated
	}
	_, hasProject := r.s.projects[projectID]
	_, hasSkill := r.s.skills[skillID]
	if !hasProject || !hasSkill {
		return skill.ErrProjectOrSkillNotFound
	}
	r.s.projectSkills[k] = struct{}{}
	return nil
}

func (r *ProjectSkills) Remove(_ context.Context, projectID, skillID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := pair{projectID: projectID, skillID: skillID}
	if _, ok := r.s.projectSkills[k]; !ok {
		return skill.ErrNotAssociated
	}
	delete(r.s.projectSkills, k)
	return nil
}

type WorkExperience struct{ s *Store }

func (r *WorkExperience) ListByProfile(_ context.Context, profileID int64) ([]experience.WorkExperience, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]experience.WorkExperience, 0)
	for _, w := range r.s.experiences {
		if w.ProfileID == profileID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate.Time) {
			return out[i].StartDate.After(out[j].StartDate.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *WorkExperience) GetByID(_ context.Context, id int64) (experience.WorkExperience, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.experiences[id]
	if !ok {
		return experience.WorkExperience{}, experience.ErrNotFound
	}
	return w, nil
}

func (r *WorkExperience) OwnerProfileID(ctx context.Context, id int64) (int64, error) {
	w, err := r.GetByID(ctx, id)
	return w.ProfileID, err
}

func (r *WorkExperience) Create(_ context.Context, profileID int64, f experience.Fields) (experience.WorkExperience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[profileID]; !ok {
		return experience.WorkExperience{}, profile.ErrNotFound
	}
	w := experience.WorkExperience{
		ID:          r.s.nextID(),
		ProfileID:   profileID,
		Company:     f.Company,
		Role:        f.Role,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Description: f.Description,
	}
	r.s.experiences[w.ID] = w
	return w, nil
}

func (r *WorkExperience) Update(_ context.Context, id int64, f experience.Fields) (experience.WorkExperience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.experiences[id]
	if !ok {
		return experience.WorkExperience{}, experience.ErrNotFound
	}
	w.Company, w.Role, w.StartDate, w.EndDate, w.Description = f.Company, f.Role, f.StartDate, f.EndDate, f.Description
	r.s.experiences[id] = w
	return w, nil
}

func (r *WorkExperience) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.experiences[id]; !ok {
		return experience.ErrNotFound
	}
	delete(r.s.experiences, id)
	return nil
}
