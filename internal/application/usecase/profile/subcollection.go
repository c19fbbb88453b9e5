package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhvu/devconnect/internal/domain/profile"
	"github.com/minhvu/devconnect/pkg/apperror"
)

type ExperienceInput struct {
	OwnerID     uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	OwnerID      uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type RemoveEntryInput struct {
	OwnerID uuid.UUID
	EntryID string
}

type SubcollectionOutput struct {
	Profile *profile.Profile
}

func requireFields(checks map[string]bool) []apperror.FieldError {
	var fields []apperror.FieldError
	// deterministic order keeps validation payloads stable
	order := []string{"title", "company", "school", "degree", "fieldofstudy", "from"}
	for _, name := range order {
		if missing, ok := checks[name]; ok && missing {
			fields = append(fields, apperror.FieldError{Field: name, Message: fmt.Sprintf("%s is required", name)})
		}
	}
	return fields
}

func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input ExperienceInput) (*SubcollectionOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteAddExperience")
	defer span.End()

	fields := requireFields(map[string]bool{
		"title":   input.Title == "",
		"company": input.Company == "",
		"from":    input.From.IsZero(),
	})
	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	entry := profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}

	p, err := uc.loadOwnerProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(entry)
	if err := uc.profileRepo.ReplaceExperience(ctx, input.OwnerID, p.Experience); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save experience failed: %w", err)
	}

	return &SubcollectionOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, input RemoveEntryInput) (*SubcollectionOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteRemoveExperience")
	defer span.End()

	entryID, err := uuid.Parse(input.EntryID)
	if err != nil {
		return nil, apperror.NewNotFound("experience entry", input.EntryID)
	}

	p, err := uc.loadOwnerProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveExperience(entryID); err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			return nil, apperror.NewNotFound("experience entry", input.EntryID)
		}
		return nil, err
	}

	if err := uc.profileRepo.ReplaceExperience(ctx, input.OwnerID, p.Experience); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save experience failed: %w", err)
	}

	return &SubcollectionOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input EducationInput) (*SubcollectionOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteAddEducation")
	defer span.End()

	fields := requireFields(map[string]bool{
		"school":       input.School == "",
		"degree":       input.Degree == "",
		"fieldofstudy": input.FieldOfStudy == "",
		"from":         input.From.IsZero(),
	})
	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	entry := profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}

	p, err := uc.loadOwnerProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(entry)
	if err := uc.profileRepo.ReplaceEducation(ctx, input.OwnerID, p.Education); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save education failed: %w", err)
	}

	return &SubcollectionOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, input RemoveEntryInput) (*SubcollectionOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteRemoveEducation")
	defer span.End()

	entryID, err := uuid.Parse(input.EntryID)
	if err != nil {
		return nil, apperror.NewNotFound("education entry", input.EntryID)
	}

	p, err := uc.loadOwnerProfile(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveEducation(entryID); err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			return nil, apperror.NewNotFound("education entry", input.EntryID)
		}
		return nil, err
	}

	if err := uc.profileRepo.ReplaceEducation(ctx, input.OwnerID, p.Education); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save education failed: %w", err)
	}

	return &SubcollectionOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) loadOwnerProfile(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", ownerID.String())
		}
		return nil, fmt.Errorf("load profile failed: %w", err)
	}
	return p, nil
}
