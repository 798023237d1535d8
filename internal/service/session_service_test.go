package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
)

type sessionFixture struct {
	repo      *fakeSessionRepo
	users     *fakeUserRepo
	locations *fakeLocationRepo
	cache     *fakeCacheRepo
	metrics   *MetricsService
	cacheSvc  *CacheService
	svc       *SessionService
}

func newSessionFixture(sessions ...models.Session) *sessionFixture {
	f := &sessionFixture{
		repo:      newFakeSessionRepo(sessions...),
		users:     newFakeUserRepo(seedUser(aliceID, "Alice", "alice@example.com"), seedUser(bobID, "Bob", "bob@example.com"), seedUser(carolID, "Carol", "carol@example.com")),
		locations: newFakeLocationRepo(seedLocation(studioID, "Studio 5", "Austin")),
		cache:     newFakeCacheRepo(),
		metrics:   NewMetricsService(),
	}
	f.cacheSvc = NewCacheService(f.cache, f.metrics, time.Minute, zap.NewNop(), true)
	f.svc = NewSessionService(f.repo, f.users, f.locations, f.cacheSvc, validation.New(), f.metrics, zap.NewNop())
	return f
}

func sessionRequest(start time.Time, participants ...string) dto.SessionRequest {
	end := start.Add(90 * time.Minute)
	return dto.SessionRequest{
		Title:          " Sunday drills ",
		SessionType:    string(models.SessionPartnerPractice),
		ScheduledStart: &start,
		ScheduledEnd:   &end,
		OrganizerID:    aliceID,
		ParticipantIDs: participants,
	}
}

func TestSessionServiceCreate(t *testing.T) {
	f := newSessionFixture()
	start := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)
	req := sessionRequest(start, bobID, bobID)
	location := studioID
	req.LocationID = &location
	req.FocusAreas = []string{string(models.FocusMusicality)}

	resp, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Sunday drills", resp.Title)
	assert.Equal(t, string(models.SessionProposed), resp.Status)
	assert.Equal(t, string(models.VisibilityPublic), resp.Visibility)
	require.NotNil(t, resp.Organizer)
	assert.Equal(t, aliceID, resp.Organizer.ID)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "Studio 5", resp.Location.Name)
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, bobID, resp.Participants[0].ID)
	assert.Equal(t, []string{"MUSICALITY"}, resp.FocusAreas)
	assert.Equal(t, float64(1), eventCount(t, f.metrics, EventSessionCreated))
}

func TestSessionServiceCreateRejectsInvertedTimes(t *testing.T) {
	f := newSessionFixture()
	start := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)
	req := sessionRequest(start)
	req.ScheduledEnd = &start

	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Empty(t, f.repo.sessions)
}

func TestSessionServiceCreateMissingReferences(t *testing.T) {
	f := newSessionFixture()
	start := time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC)

	req := sessionRequest(start, bobID, "00000000-0000-4000-8000-000000000000")
	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	req = sessionRequest(start)
	req.OrganizerID = "00000000-0000-4000-8000-000000000000"
	_, err = f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	req = sessionRequest(start)
	missing := parkID
	req.LocationID = &missing
	_, err = f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestSessionServiceCreateCapacityBelowParticipants(t *testing.T) {
	f := newSessionFixture()
	req := sessionRequest(time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC), bobID, carolID)
	capacity := 1
	req.Capacity = &capacity

	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestSessionServiceAddParticipant(t *testing.T) {
	capacity := 1
	session := models.Session{Auditable: models.Auditable{ID: "s-1"}, OrganizerID: aliceID, Status: models.SessionScheduled, Capacity: &capacity}
	f := newSessionFixture(session)
	ctx := context.Background()

	resp, err := f.svc.AddParticipant(ctx, "s-1", bobID)
	require.NoError(t, err)
	require.Len(t, resp.Participants, 1)

	resp, err = f.svc.AddParticipant(ctx, "s-1", bobID)
	require.NoError(t, err)
	assert.Len(t, resp.Participants, 1)

	_, err = f.svc.AddParticipant(ctx, "s-1", carolID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(err))

	require.NoError(t, f.svc.RemoveParticipant(ctx, "s-1", bobID))
	resp, err = f.svc.AddParticipant(ctx, "s-1", carolID)
	require.NoError(t, err)
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, carolID, resp.Participants[0].ID)
}

func TestSessionServiceCancel(t *testing.T) {
	session := models.Session{Auditable: models.Auditable{ID: "s-1"}, OrganizerID: aliceID, Status: models.SessionScheduled}
	f := newSessionFixture(session)
	ctx := context.Background()

	resp, err := f.svc.Cancel(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.SessionCancelled), resp.Status)

	_, err = f.svc.Cancel(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.statusWrites)

	_, err = f.svc.AddParticipant(ctx, "s-1", bobID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.svc.Cancel(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestSessionServiceGetUsesCacheUntilWrite(t *testing.T) {
	session := models.Session{Auditable: models.Auditable{ID: "s-1"}, Title: "Drills", OrganizerID: aliceID, Status: models.SessionScheduled}
	f := newSessionFixture(session)
	ctx := context.Background()

	first, err := f.svc.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Contains(t, f.cache.values, cacheKeySessions+"s-1")

	f.repo.sessions["s-1"].Title = "Changed behind the cache"
	cached, err := f.svc.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, first.Title, cached.Title)

	_, err = f.svc.AddParticipant(ctx, "s-1", bobID)
	require.NoError(t, err)
	assert.NotContains(t, f.cache.values, cacheKeySessions+"s-1")

	fresh, err := f.svc.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Changed behind the cache", fresh.Title)
	assert.Len(t, fresh.Participants, 1)
}

func TestSessionServiceGetDropsUsersChangedAfterCaching(t *testing.T) {
	session := models.Session{Auditable: models.Auditable{ID: "s-1"}, Title: "Drills", OrganizerID: aliceID, Status: models.SessionScheduled}
	f := newSessionFixture(session)
	users := NewUserService(f.users, f.locations, f.cacheSvc, validation.New(), f.metrics, zap.NewNop())
	ctx := context.Background()

	_, err := f.svc.AddParticipant(ctx, "s-1", bobID)
	require.NoError(t, err)
	cached, err := f.svc.Get(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, cached.Participants, 1)
	assert.Contains(t, f.cache.values, cacheKeySessions+"s-1")

	_, err = users.UpdateStatus(ctx, aliceID, dto.UserStatusRequest{AccountStatus: string(models.AccountHidden)})
	require.NoError(t, err)
	assert.NotContains(t, f.cache.values, cacheKeySessions+"s-1")

	_, err = f.svc.Get(ctx, "s-1")
	require.NoError(t, err)
	require.NoError(t, users.Delete(ctx, bobID))
	assert.NotContains(t, f.cache.values, cacheKeySessions+"s-1")

	fresh, err := f.svc.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Participants)
}

func TestSessionServiceListing(t *testing.T) {
	early := models.Session{Auditable: models.Auditable{ID: "s-1"}, OrganizerID: aliceID, ScheduledStart: time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)}
	late := models.Session{Auditable: models.Auditable{ID: "s-2"}, OrganizerID: bobID, ScheduledStart: time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC)}
	f := newSessionFixture(early, late)
	ctx := context.Background()

	byAlice, err := f.svc.ListByOrganizer(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, byAlice, 1)
	assert.Equal(t, "s-1", byAlice[0].ID)

	_, err = f.svc.ListByOrganizer(ctx, "00000000-0000-4000-8000-000000000000")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	november, err := f.svc.ListBetween(ctx, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, november, 1)
	assert.Equal(t, "s-1", november[0].ID)

	_, err = f.svc.ListBetween(ctx, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}
