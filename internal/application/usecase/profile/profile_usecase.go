package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/minhvu/devconnect/adapters/event"
	"github.com/minhvu/devconnect/internal/domain/post"
	"github.com/minhvu/devconnect/internal/domain/profile"
	"github.com/minhvu/devconnect/internal/domain/user"
	"github.com/minhvu/devconnect/pkg/apperror"
	"github.com/minhvu/devconnect/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

// EventPublisher is the slice of the Kafka producer the profile flows need.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
	PublishAccountEvent(ctx context.Context, payload event.AccountEventPayload) error
}

type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	postRepo    post.Repository
	events      EventPublisher
	logger      logger.Logger
}

func NewProfileUseCase(pRepo profile.Repository, uRepo user.Repository, postRepo post.Repository, events EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		postRepo:    postRepo,
		events:      events,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetOwnProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteGetOwnProfile")
	defer span.End()

	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.OwnerID.String())
		}
		span.RecordError(err)
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type GetProfileByUserIDInput struct {
	UserID string
}

// ExecuteGetByUserID serves the public lookup. A string that does not parse as
// an id is a client mistake, so it is reported the same way as an absent
// profile rather than as a storage fault.
func (uc *ProfileUseCase) ExecuteGetByUserID(ctx context.Context, input GetProfileByUserIDInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteGetByUserID")
	defer span.End()

	ownerID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, apperror.NewNotFound("profile", input.UserID)
	}

	p, err := uc.profileRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", input.UserID)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("get profile by user id failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteListAll(ctx context.Context) (*ListProfilesOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteListAll")
	defer span.End()

	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}

type UpsertProfileInput struct {
	OwnerID        uuid.UUID
	Company        string
	Location       string
	Website        string
	Bio            string
	Status         string
	GithubUsername string
	Skills         []string
	Social         profile.SocialLinks
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpsert creates the owner's profile or replaces it whole. Omitted
// scalars arrive as empty strings from the transport layer and are written as
// such; sub-collections are untouched by design.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteUpsert")
	defer span.End()

	var fields []apperror.FieldError
	if input.Status == "" {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "Status is required"})
	}
	if len(input.Skills) == 0 {
		fields = append(fields, apperror.FieldError{Field: "skills", Message: "Skills is required"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidation(fields)
	}

	p := &profile.Profile{
		OwnerID:        input.OwnerID,
		Company:        input.Company,
		Location:       input.Location,
		Website:        input.Website,
		Bio:            input.Bio,
		Status:         input.Status,
		GithubUsername: input.GithubUsername,
		Skills:         input.Skills,
		Social:         input.Social,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upsert profile failed: %w", err)
	}

	// Re-read to pick up the joined user fields and preserved sub-collections.
	saved, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reload profile after upsert failed: %w", err)
	}

	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: event.ProfileEventTypeUpdated,
			OwnerID:   input.OwnerID,
			At:        time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish profile updated event", err, zap.String("owner_id", input.OwnerID.String()))
		}
	}()

	return &UpsertProfileOutput{Profile: saved}, nil
}

type DeleteAccountInput struct {
	OwnerID uuid.UUID
}

// ExecuteDeleteAccount cascades posts, then the profile, then the user record.
// The ordering matters: a crash mid-way leaves a recoverable partial state
// (posts already gone before the profile, profile gone before the account).
func (uc *ProfileUseCase) ExecuteDeleteAccount(ctx context.Context, input DeleteAccountInput) error {
	ctx, span := tracer.Start(ctx, "ExecuteDeleteAccount")
	defer span.End()

	if err := uc.postRepo.DeleteByOwner(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete posts failed: %w", err)
	}
	if err := uc.profileRepo.DeleteByOwner(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete profile failed: %w", err)
	}
	if err := uc.userRepo.Delete(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete user failed: %w", err)
	}

	go func() {
		err := uc.events.PublishAccountEvent(context.Background(), event.AccountEventPayload{
			EventType: event.AccountEventTypeDeleted,
			UserID:    input.OwnerID,
			At:        time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish account deleted event", err, zap.String("user_id", input.OwnerID.String()))
		}
	}()

	return nil
}
