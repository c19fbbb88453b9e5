package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")
)

// SocialLinks always carries all five networks; a network the owner never set
// is an empty string, not an absent key.
type SocialLinks struct {
	YouTube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Profile is the single per-owner document. Experience and Education are
// embedded, most-recent-first.
type Profile struct {
	OwnerID        uuid.UUID    `json:"owner_id"`
	Company        string       `json:"company"`
	Location       string       `json:"location"`
	Website        string       `json:"website"`
	Bio            string       `json:"bio"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Joined from the owning user record on reads.
	UserName   string `json:"name"`
	UserAvatar string `json:"avatar"`
}

func (p *Profile) AddExperience(e Experience) {
	p.Experience = insertFront(p.Experience, e)
}

func (p *Profile) RemoveExperience(id uuid.UUID) error {
	seq, ok := removeByID(p.Experience, id, func(e Experience) uuid.UUID { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	p.Experience = seq
	return nil
}

func (p *Profile) AddEducation(e Education) {
	p.Education = insertFront(p.Education, e)
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	seq, ok := removeByID(p.Education, id, func(e Education) uuid.UUID { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	p.Education = seq
	return nil
}

// ParseSkills normalizes the comma-separated form: each element trimmed,
// empties dropped.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	ReplaceExperience(ctx context.Context, ownerID uuid.UUID, entries []Experience) error
	ReplaceEducation(ctx context.Context, ownerID uuid.UUID, entries []Education) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
