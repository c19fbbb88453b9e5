package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/minhvu/devconnect/internal/domain/github"
	"github.com/minhvu/devconnect/internal/domain/profile"
)

// SkillList accepts both wire forms: a JSON array of strings or one
// comma-separated string. Either way every element comes out trimmed.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = profile.ParseSkills(asString)
		return nil
	}

	var asSlice []string
	if err := json.Unmarshal(data, &asSlice); err != nil {
		return err
	}
	out := make([]string, 0, len(asSlice))
	for _, v := range asSlice {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*s = out
	return nil
}

type UpsertProfileRequest struct {
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Website        string    `json:"website"`
	Bio            string    `json:"bio"`
	Status         string    `json:"status"`
	GithubUsername string    `json:"githubusername"`
	Skills         SkillList `json:"skills"`
	YouTube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	LinkedIn       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

func (r *UpsertProfileRequest) ToSocialLinks() profile.SocialLinks {
	return profile.SocialLinks{
		YouTube:   r.YouTube,
		Twitter:   r.Twitter,
		Facebook:  r.Facebook,
		LinkedIn:  r.LinkedIn,
		Instagram: r.Instagram,
	}
}

type AddExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type ExperienceDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type EducationDTO struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type SocialDTO struct {
	YouTube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

type ProfileDTO struct {
	UserID         string          `json:"user"`
	Name           string          `json:"name"`
	Avatar         string          `json:"avatar"`
	Company        string          `json:"company"`
	Location       string          `json:"location"`
	Website        string          `json:"website"`
	Bio            string          `json:"bio"`
	Status         string          `json:"status"`
	GithubUsername string          `json:"githubusername"`
	Skills         []string        `json:"skills"`
	Social         SocialDTO       `json:"social"`
	Experience     []ExperienceDTO `json:"experience"`
	Education      []EducationDTO  `json:"education"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		UserID:         p.OwnerID.String(),
		Name:           p.UserName,
		Avatar:         p.UserAvatar,
		Company:        p.Company,
		Location:       p.Location,
		Website:        p.Website,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         SocialDTO(p.Social),
		UpdatedAt:      p.UpdatedAt,
	}
	if dto.Skills == nil {
		dto.Skills = []string{}
	}

	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:          e.ID.String(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}

	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:           e.ID.String(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}
	}

	return dto
}

type RepoSummaryDTO struct {
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Watchers    int       `json:"watchers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToRepoSummaryDTOs(repos []github.RepoSummary) []RepoSummaryDTO {
	dtos := make([]RepoSummaryDTO, len(repos))
	for i, r := range repos {
		dtos[i] = RepoSummaryDTO(r)
	}
	return dtos
}
