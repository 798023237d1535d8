package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dancepractice/practice-api/internal/models"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type fakeUserRepo struct {
	users         map[string]*models.User
	blocks        map[string][]string
	preferenceIDs map[string][]string
	updateErr     error
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}, blocks: map[string][]string{}, preferenceIDs: map[string][]string{}}
	for i := range users {
		user := users[i]
		repo.users[user.ID] = &user
	}
	return repo
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := f.users[id]; ok && user.DeletedAt == nil {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if user, err := f.FindByID(ctx, id); err == nil {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var out []models.User
	for _, user := range f.users {
		if user.DeletedAt == nil {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	for _, user := range f.users {
		if user.DeletedAt == nil && strings.EqualFold(user.Email, email) && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	user.Version++
	copy := *user
	f.users[user.ID] = &copy
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, user *models.User) error {
	return f.Update(ctx, user)
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, id string, version int64) error {
	user, ok := f.users[id]
	if !ok || user.Version != version {
		return models.ErrStaleVersion
	}
	now := time.Now()
	user.DeletedAt = &now
	return nil
}

func (f *fakeUserRepo) ListBlocked(ctx context.Context, userID string) ([]models.User, error) {
	return f.FindByIDs(ctx, f.blocks[userID])
}

func (f *fakeUserRepo) Block(ctx context.Context, userID, blockedID string) error {
	for _, id := range f.blocks[userID] {
		if id == blockedID {
			return nil
		}
	}
	f.blocks[userID] = append(f.blocks[userID], blockedID)
	return nil
}

func (f *fakeUserRepo) Unblock(ctx context.Context, userID, blockedID string) error {
	kept := f.blocks[userID][:0]
	for _, id := range f.blocks[userID] {
		if id != blockedID {
			kept = append(kept, id)
		}
	}
	f.blocks[userID] = kept
	return nil
}

func (f *fakeUserRepo) ListSchedulePreferenceIDs(ctx context.Context, userIDs []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, id := range userIDs {
		out[id] = f.preferenceIDs[id]
	}
	return out, nil
}

type fakeLocationRepo struct {
	locations map[string]*models.Location
	lists     int
}

func newFakeLocationRepo(locations ...models.Location) *fakeLocationRepo {
	repo := &fakeLocationRepo{locations: map[string]*models.Location{}}
	for i := range locations {
		location := locations[i]
		repo.locations[location.ID] = &location
	}
	return repo
}

func (f *fakeLocationRepo) FindByID(ctx context.Context, id string) (*models.Location, error) {
	if location, ok := f.locations[id]; ok && location.DeletedAt == nil {
		copy := *location
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLocationRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Location, error) {
	var out []models.Location
	for _, id := range ids {
		if location, err := f.FindByID(ctx, id); err == nil {
			out = append(out, *location)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) List(ctx context.Context, filter models.LocationFilter) ([]models.Location, error) {
	f.lists++
	var out []models.Location
	for _, location := range f.locations {
		if location.DeletedAt != nil {
			continue
		}
		if filter.City != "" && (location.City == nil || !strings.EqualFold(*location.City, filter.City)) {
			continue
		}
		out = append(out, *location)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeLocationRepo) Create(ctx context.Context, location *models.Location) error {
	if location.ID == "" {
		location.ID = uuid.NewString()
	}
	copy := *location
	f.locations[location.ID] = &copy
	return nil
}

func (f *fakeLocationRepo) Update(ctx context.Context, location *models.Location) error {
	location.Version++
	copy := *location
	f.locations[location.ID] = &copy
	return nil
}

func (f *fakeLocationRepo) SoftDelete(ctx context.Context, id string, version int64) error {
	now := time.Now()
	f.locations[id].DeletedAt = &now
	return nil
}

type fakeSessionRepo struct {
	sessions     map[string]*models.Session
	participants map[string][]string
	statusWrites int
}

func newFakeSessionRepo(sessions ...models.Session) *fakeSessionRepo {
	repo := &fakeSessionRepo{sessions: map[string]*models.Session{}, participants: map[string][]string{}}
	for i := range sessions {
		session := sessions[i]
		repo.sessions[session.ID] = &session
	}
	return repo
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id string) (*models.Session, error) {
	if session, ok := f.sessions[id]; ok && session.DeletedAt == nil {
		copy := *session
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSessionRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]models.Session, error) {
	var out []models.Session
	for _, session := range f.sessions {
		if session.OrganizerID == organizerID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, session := range f.sessions {
		if !session.ScheduledStart.Before(from) && !session.ScheduledStart.After(to) {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session, participantIDs []string) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	copy := *session
	f.sessions[session.ID] = &copy
	f.participants[session.ID] = append([]string(nil), participantIDs...)
	return nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *models.Session, participantIDs []string) error {
	session.Version++
	copy := *session
	f.sessions[session.ID] = &copy
	f.participants[session.ID] = append([]string(nil), participantIDs...)
	return nil
}

func (f *fakeSessionRepo) UpdateStatus(ctx context.Context, session *models.Session) error {
	f.statusWrites++
	session.Version++
	copy := *session
	f.sessions[session.ID] = &copy
	return nil
}

func (f *fakeSessionRepo) ListParticipants(ctx context.Context, sessionIDs []string) ([]models.SessionParticipant, error) {
	var out []models.SessionParticipant
	for _, sessionID := range sessionIDs {
		for _, userID := range f.participants[sessionID] {
			out = append(out, models.SessionParticipant{SessionID: sessionID, UserID: userID})
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) AddParticipant(ctx context.Context, sessionID, userID string) error {
	f.participants[sessionID] = append(f.participants[sessionID], userID)
	return nil
}

func (f *fakeSessionRepo) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	kept := f.participants[sessionID][:0]
	for _, id := range f.participants[sessionID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.participants[sessionID] = kept
	return nil
}

type fakeCacheRepo struct {
	values map[string][]byte
	gets   int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	f.gets++
	raw, ok := f.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = raw
	return nil
}

func (f *fakeCacheRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.values {
		if strings.HasPrefix(key, prefix) {
			delete(f.values, key)
		}
	}
	return nil
}

type fakeNoteRepo struct {
	notes map[string]*models.SessionNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[string]*models.SessionNote{}}
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *models.SessionNote) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	copy := *note
	f.notes[note.ID] = &copy
	return nil
}

func (f *fakeNoteRepo) FindByID(ctx context.Context, id string) (*models.SessionNote, error) {
	if note, ok := f.notes[id]; ok && note.DeletedAt == nil {
		copy := *note
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeNoteRepo) ListBySession(ctx context.Context, sessionID string) ([]models.SessionNote, error) {
	var out []models.SessionNote
	for _, note := range f.notes {
		if note.SessionID == sessionID && note.DeletedAt == nil {
			out = append(out, *note)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) SoftDelete(ctx context.Context, id string, version int64) error {
	now := time.Now()
	f.notes[id].DeletedAt = &now
	return nil
}

type fakePreferenceRepo struct {
	prefs     map[string]*models.SchedulePreference
	windows   map[string][]models.AvailabilityWindow
	locations map[string][]string
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{
		prefs:     map[string]*models.SchedulePreference{},
		windows:   map[string][]models.AvailabilityWindow{},
		locations: map[string][]string{},
	}
}

func (f *fakePreferenceRepo) ListByUser(ctx context.Context, userID string) ([]models.SchedulePreference, error) {
	var out []models.SchedulePreference
	for _, pref := range f.prefs {
		if pref.UserID == userID && pref.DeletedAt == nil {
			out = append(out, *pref)
		}
	}
	return out, nil
}

func (f *fakePreferenceRepo) FindByID(ctx context.Context, id string) (*models.SchedulePreference, error) {
	if pref, ok := f.prefs[id]; ok && pref.DeletedAt == nil {
		copy := *pref
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakePreferenceRepo) store(pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) {
	copy := *pref
	f.prefs[pref.ID] = &copy
	stored := make([]models.AvailabilityWindow, len(windows))
	for i, window := range windows {
		window.PreferenceID = pref.ID
		stored[i] = window
	}
	f.windows[pref.ID] = stored
	f.locations[pref.ID] = append([]string(nil), locationIDs...)
}

func (f *fakePreferenceRepo) Create(ctx context.Context, pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) error {
	if pref.ID == "" {
		pref.ID = uuid.NewString()
	}
	f.store(pref, windows, locationIDs)
	return nil
}

func (f *fakePreferenceRepo) Update(ctx context.Context, pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) error {
	pref.Version++
	f.store(pref, windows, locationIDs)
	return nil
}

func (f *fakePreferenceRepo) SoftDelete(ctx context.Context, id string, version int64) error {
	now := time.Now()
	f.prefs[id].DeletedAt = &now
	return nil
}

func (f *fakePreferenceRepo) ListWindows(ctx context.Context, preferenceIDs []string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, id := range preferenceIDs {
		out = append(out, f.windows[id]...)
	}
	return out, nil
}

func (f *fakePreferenceRepo) ListLocationLinks(ctx context.Context, preferenceIDs []string) ([]models.PreferenceLocation, error) {
	var out []models.PreferenceLocation
	for _, id := range preferenceIDs {
		for _, locationID := range f.locations[id] {
			out = append(out, models.PreferenceLocation{PreferenceID: id, LocationID: locationID})
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	reports map[string]*models.AbuseReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*models.AbuseReport{}}
}

func (f *fakeReportRepo) Create(ctx context.Context, report *models.AbuseReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	copy := *report
	f.reports[report.ID] = &copy
	return nil
}

func (f *fakeReportRepo) FindByID(ctx context.Context, id string) (*models.AbuseReport, error) {
	if report, ok := f.reports[id]; ok {
		copy := *report
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeReportRepo) Update(ctx context.Context, report *models.AbuseReport) error {
	report.Version++
	copy := *report
	f.reports[report.ID] = &copy
	return nil
}

func (f *fakeReportRepo) ListByStatus(ctx context.Context, status models.AbuseReportStatus) ([]models.AbuseReport, error) {
	var out []models.AbuseReport
	for _, report := range f.reports {
		if report.Status == status {
			out = append(out, *report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func eventCount(t *testing.T, metrics *MetricsService, event string) float64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "practice_events_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "event" && label.GetValue() == event {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
