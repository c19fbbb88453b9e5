package profile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/devconnect/adapters/event"
	"github.com/minhvu/devconnect/internal/domain/profile"
	"github.com/minhvu/devconnect/internal/domain/user"
	"github.com/minhvu/devconnect/pkg/apperror"
	"github.com/minhvu/devconnect/pkg/logger"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
	deletes  *[]string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func copyProfile(p *profile.Profile) *profile.Profile {
	cp := *p
	cp.Skills = append([]string(nil), p.Skills...)
	cp.Experience = append([]profile.Experience(nil), p.Experience...)
	cp.Education = append([]profile.Education(nil), p.Education...)
	return &cp
}

func (r *fakeProfileRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (r *fakeProfileRepo) ListAll(_ context.Context) ([]*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, copyProfile(p))
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := copyProfile(p)
	if existing, ok := r.profiles[p.OwnerID]; ok {
		// scalar overwrite must not touch the sub-collections
		stored.Experience = existing.Experience
		stored.Education = existing.Education
	} else {
		stored.Experience = []profile.Experience{}
		stored.Education = []profile.Education{}
	}
	r.profiles[p.OwnerID] = stored
	return nil
}

func (r *fakeProfileRepo) ReplaceExperience(_ context.Context, ownerID uuid.UUID, entries []profile.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	p.Experience = append([]profile.Experience(nil), entries...)
	return nil
}

func (r *fakeProfileRepo) ReplaceEducation(_ context.Context, ownerID uuid.UUID, entries []profile.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	p.Education = append([]profile.Education(nil), entries...)
	return nil
}

func (r *fakeProfileRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, ownerID)
	if r.deletes != nil {
		*r.deletes = append(*r.deletes, "profile")
	}
	return nil
}

type fakeUserRepo struct {
	deletes *[]string
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return &user.User{ID: id, Name: "Test User"}, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, _ uuid.UUID) error {
	if r.deletes != nil {
		*r.deletes = append(*r.deletes, "user")
	}
	return nil
}

type fakePostRepo struct {
	deletes *[]string
}

func (r *fakePostRepo) DeleteByOwner(_ context.Context, _ uuid.UUID) error {
	if r.deletes != nil {
		*r.deletes = append(*r.deletes, "posts")
	}
	return nil
}

type fakeEvents struct {
	mu sync.Mutex
}

func (e *fakeEvents) PublishProfileEvent(_ context.Context, _ event.ProfileEventPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return nil
}

func (e *fakeEvents) PublishAccountEvent(_ context.Context, _ event.AccountEventPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return nil
}

func newTestUseCase(repo *fakeProfileRepo, deletes *[]string) *ProfileUseCase {
	repo.deletes = deletes
	return NewProfileUseCase(
		repo,
		&fakeUserRepo{deletes: deletes},
		&fakePostRepo{deletes: deletes},
		&fakeEvents{},
		logger.NewZapLogger("development"),
	)
}

func TestExecuteUpsert_CreatesAndFullyOverwrites(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, nil)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{
		OwnerID: ownerID,
		Company: "Acme",
		Status:  "Developer",
		Skills:  []string{"js", "go"},
	})
	require.NoError(t, err)

	// second submit omits company; the field must reset, not persist
	out, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{
		OwnerID: ownerID,
		Status:  "Senior Developer",
		Skills:  []string{"go"},
	})
	require.NoError(t, err)

	assert.Equal(t, "", out.Profile.Company)
	assert.Equal(t, "Senior Developer", out.Profile.Status)
	assert.Equal(t, []string{"go"}, out.Profile.Skills)
}

func TestExecuteUpsert_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), nil)

	_, err := uc.ExecuteUpsert(context.Background(), UpsertProfileInput{OwnerID: uuid.New()})

	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Fields, 2)
	assert.Equal(t, "status", valErr.Fields[0].Field)
	assert.Equal(t, "skills", valErr.Fields[1].Field)
}

func TestExecuteUpsert_PreservesSubcollections(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, nil)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{OwnerID: ownerID, Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)

	_, err = uc.ExecuteAddExperience(ctx, ExperienceInput{
		OwnerID: ownerID, Title: "Engineer", Company: "Acme", From: time.Now(),
	})
	require.NoError(t, err)

	out, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{OwnerID: ownerID, Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)
	assert.Len(t, out.Profile.Experience, 1)
}

func TestExecuteGetByUserID_MalformedIDIsNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), nil)

	_, err := uc.ExecuteGetByUserID(context.Background(), GetProfileByUserIDInput{UserID: "not-a-uuid"})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestExecuteGetOwnProfile_NotFound(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), nil)

	_, err := uc.ExecuteGetOwnProfile(context.Background(), GetProfileInput{OwnerID: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestExecuteAddExperience_FrontInsertOrder(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, nil)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{OwnerID: ownerID, Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)

	_, err = uc.ExecuteAddExperience(ctx, ExperienceInput{OwnerID: ownerID, Title: "E1", Company: "A", From: time.Now()})
	require.NoError(t, err)
	out, err := uc.ExecuteAddExperience(ctx, ExperienceInput{OwnerID: ownerID, Title: "E2", Company: "B", From: time.Now()})
	require.NoError(t, err)

	require.Len(t, out.Profile.Experience, 2)
	assert.Equal(t, "E2", out.Profile.Experience[0].Title)
	assert.Equal(t, "E1", out.Profile.Experience[1].Title)
}

func TestExecuteAddExperience_MissingFields(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), nil)

	_, err := uc.ExecuteAddExperience(context.Background(), ExperienceInput{OwnerID: uuid.New()})

	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	got := make([]string, len(valErr.Fields))
	for i, f := range valErr.Fields {
		got[i] = f.Field
	}
	assert.Equal(t, []string{"title", "company", "from"}, got)
}

func TestExecuteAddEducation_MissingFields(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), nil)

	_, err := uc.ExecuteAddEducation(context.Background(), EducationInput{OwnerID: uuid.New()})

	var valErr *apperror.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Fields, 4)
}

func TestExecuteRemoveExperience_AbsentEntry(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, nil)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{OwnerID: ownerID, Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)
	_, err = uc.ExecuteAddExperience(ctx, ExperienceInput{OwnerID: ownerID, Title: "E1", Company: "A", From: time.Now()})
	require.NoError(t, err)

	_, err = uc.ExecuteRemoveExperience(ctx, RemoveEntryInput{OwnerID: ownerID, EntryID: uuid.New().String()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// the unrelated entry must survive
	out, err := uc.ExecuteGetOwnProfile(ctx, GetProfileInput{OwnerID: ownerID})
	require.NoError(t, err)
	assert.Len(t, out.Profile.Experience, 1)
}

func TestExecuteRemoveExperience_MalformedEntryID(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), nil)

	_, err := uc.ExecuteRemoveExperience(context.Background(), RemoveEntryInput{OwnerID: uuid.New(), EntryID: "junk"})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestExecuteRemoveEducation_RemovesOnlyTarget(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, nil)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{OwnerID: ownerID, Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)
	_, err = uc.ExecuteAddEducation(ctx, EducationInput{OwnerID: ownerID, School: "S1", Degree: "D", FieldOfStudy: "CS", From: time.Now()})
	require.NoError(t, err)
	out, err := uc.ExecuteAddEducation(ctx, EducationInput{OwnerID: ownerID, School: "S2", Degree: "D", FieldOfStudy: "CS", From: time.Now()})
	require.NoError(t, err)

	target := out.Profile.Education[0]
	removed, err := uc.ExecuteRemoveEducation(ctx, RemoveEntryInput{OwnerID: ownerID, EntryID: target.ID.String()})
	require.NoError(t, err)
	require.Len(t, removed.Profile.Education, 1)
	assert.Equal(t, "S1", removed.Profile.Education[0].School)
}

func TestExecuteDeleteAccount_CascadeOrder(t *testing.T) {
	repo := newFakeProfileRepo()
	var deletes []string
	uc := newTestUseCase(repo, &deletes)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteUpsert(ctx, UpsertProfileInput{OwnerID: ownerID, Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)

	require.NoError(t, uc.ExecuteDeleteAccount(ctx, DeleteAccountInput{OwnerID: ownerID}))

	assert.Equal(t, []string{"posts", "profile", "user"}, deletes)

	_, err = uc.ExecuteGetOwnProfile(ctx, GetProfileInput{OwnerID: ownerID})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
