package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/farouk24967/NutriVision/models"
	"github.com/farouk24967/NutriVision/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*SessionManager, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewSessionManager(store, NewGeminiService()), store
}

func seedProfile(t *testing.T, store *storage.MemoryStore, identity string, p models.UserProfile) {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.ProfileKey(identity), string(b)))
}

func TestLoginFreshIdentityGetsDefaults(t *testing.T) {
	m, _ := newTestManager()

	sess, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "Alice", sess.Profile.Name)
	assert.Equal(t, "male", sess.Profile.Gender)
	assert.Equal(t, 28, sess.Profile.Age)
	assert.Equal(t, 75.0, sess.Profile.Weight)
	assert.Equal(t, 180.0, sess.Profile.Height)
	assert.Equal(t, models.GoalMuscleGain, sess.Profile.Goal)
	assert.Equal(t, models.ActivityActive, sess.Profile.ActivityLevel)
	assert.Equal(t, 0, sess.Profile.Streak)
	assert.Equal(t, 0, sess.Profile.Points)
	assert.Equal(t, models.TierFree, sess.Profile.Subscription)
	assert.Empty(t, sess.Log)
}

func TestLoginIsolatesIdentities(t *testing.T) {
	m, store := newTestManager()

	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)
	_, err = m.AddFood("a@x.com", models.FoodItem{Name: "Oatmeal"})
	require.NoError(t, err)

	sessB, err := m.Login("b@x.com", "Bob")
	require.NoError(t, err)
	assert.Empty(t, sessB.Log, "a fresh identity must never see another identity's log")
	assert.Equal(t, "Bob", sessB.Profile.Name)
	assert.Equal(t, 0, sessB.Profile.Points)

	// a@x.com's partition is untouched
	raw, err := store.Get(storage.LogKey("a@x.com"))
	require.NoError(t, err)
	var items []models.FoodItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Oatmeal", items[0].Name)
}

func TestLoginStreakReset(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

	cases := []struct {
		name       string
		lastActive time.Time
		want       int
	}{
		{"three days ago resets", now.AddDate(0, 0, -3), 0},
		{"yesterday keeps streak", now.AddDate(0, 0, -1), 5},
		{"earlier today keeps streak", now.Add(-6 * time.Hour), 5},
		{"two days ago resets", now.AddDate(0, 0, -2), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, store := newTestManager()
			m.now = func() time.Time { return now }

			p := models.DefaultProfile("Alice")
			p.Streak = 5
			p.LastActiveDate = tc.lastActive
			seedProfile(t, store, "a@x.com", p)

			sess, err := m.Login("a@x.com", "Alice")
			require.NoError(t, err)
			assert.Equal(t, tc.want, sess.Profile.Streak)
			assert.True(t, sess.Profile.LastActiveDate.Equal(now), "lastActiveDate must be refreshed")
		})
	}
}

func TestLoginRoundTripPreservesFieldsExceptNameAndLastActive(t *testing.T) {
	m, store := newTestManager()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	m.now = func() time.Time { return now }

	p := models.DefaultProfile("Old Name")
	p.Gender = "female"
	p.Age = 41
	p.Weight = 62.5
	p.Height = 168
	p.Goal = models.GoalWeightLoss
	p.ActivityLevel = models.ActivityLight
	p.Streak = 9
	p.Points = 480
	p.Subscription = models.TierPro
	p.LastActiveDate = now.Add(-2 * time.Hour)
	quiz := now.AddDate(0, 0, -1)
	p.LastQuizDate = &quiz
	seedProfile(t, store, "a@x.com", p)

	sess, err := m.Login("a@x.com", "New Name")
	require.NoError(t, err)

	assert.Equal(t, "New Name", sess.Profile.Name)
	assert.True(t, sess.Profile.LastActiveDate.Equal(now))
	assert.Equal(t, "female", sess.Profile.Gender)
	assert.Equal(t, 41, sess.Profile.Age)
	assert.Equal(t, 62.5, sess.Profile.Weight)
	assert.Equal(t, 168.0, sess.Profile.Height)
	assert.Equal(t, models.GoalWeightLoss, sess.Profile.Goal)
	assert.Equal(t, models.ActivityLight, sess.Profile.ActivityLevel)
	assert.Equal(t, 9, sess.Profile.Streak)
	assert.Equal(t, 480, sess.Profile.Points)
	assert.Equal(t, models.TierPro, sess.Profile.Subscription)
	require.NotNil(t, sess.Profile.LastQuizDate)
	assert.True(t, sess.Profile.LastQuizDate.Equal(quiz))
}

func TestLoginReconcilesPartialBlobOverDefaults(t *testing.T) {
	m, store := newTestManager()

	// An old save that predates several profile fields.
	require.NoError(t, store.Set(storage.ProfileKey("a@x.com"),
		`{"name":"Saved","weight":90,"streak":3,"last_active_date":"2020-01-01T00:00:00Z"}`))

	sess, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	assert.Equal(t, 90.0, sess.Profile.Weight)
	// absent fields fall back to defaults
	assert.Equal(t, 180.0, sess.Profile.Height)
	assert.Equal(t, models.GoalMuscleGain, sess.Profile.Goal)
	assert.Equal(t, models.TierFree, sess.Profile.Subscription)
	// stale lastActiveDate broke the chain
	assert.Equal(t, 0, sess.Profile.Streak)
	assert.Equal(t, models.ProfileSchemaVersion, sess.Profile.SchemaVersion)
}

func TestLoginCorruptProfileFallsBackToDefaults(t *testing.T) {
	m, store := newTestManager()
	require.NoError(t, store.Set(storage.ProfileKey("a@x.com"), `{"name": trunca`))
	require.NoError(t, store.Set(storage.LogKey("a@x.com"),
		`[{"id":"1","name":"Stale","calories":100,"protein":1,"carbs":1,"fats":1,"timestamp":"2020-01-01T00:00:00Z"}]`))

	sess, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	assert.Equal(t, 0, sess.Profile.Points)
	// corrupt profile means fresh identity: the stale log must not leak in
	assert.Empty(t, sess.Log)
}

func TestLoginCorruptLogYieldsEmptyLog(t *testing.T) {
	m, store := newTestManager()
	seedProfile(t, store, "a@x.com", models.DefaultProfile("Alice"))
	require.NoError(t, store.Set(storage.LogKey("a@x.com"), `[{"broken`))

	sess, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)
	assert.Empty(t, sess.Log)
}

func TestLoginStaleLogWithoutProfileIsIgnored(t *testing.T) {
	m, store := newTestManager()
	require.NoError(t, store.Set(storage.LogKey("a@x.com"),
		`[{"id":"1","name":"Stale","calories":100,"protein":1,"carbs":1,"fats":1,"timestamp":"2020-01-01T00:00:00Z"}]`))

	sess, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)
	assert.Empty(t, sess.Log)

	// the stale partition is overwritten by the empty write-through
	raw, err := store.Get(storage.LogKey("a@x.com"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, raw)
}

func TestAddFoodPrependsAndPersists(t *testing.T) {
	m, store := newTestManager()
	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	first, err := m.AddFood("a@x.com", models.FoodItem{Name: "Eggs"})
	require.NoError(t, err)
	second, err := m.AddFood("a@x.com", models.FoodItem{Name: "Toast"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.False(t, first.Timestamp.IsZero())

	sess, err := m.Get("a@x.com")
	require.NoError(t, err)
	require.Len(t, sess.Log, 2)
	assert.Equal(t, "Toast", sess.Log[0].Name, "newest entry comes first")
	assert.Equal(t, "Eggs", sess.Log[1].Name)

	raw, err := store.Get(storage.LogKey("a@x.com"))
	require.NoError(t, err)
	var items []models.FoodItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	assert.Len(t, items, 2)
}

func TestMutationsRequireActiveSession(t *testing.T) {
	m, store := newTestManager()

	_, err := m.AddFood("ghost@x.com", models.FoodItem{Name: "Nope"})
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.UpdateProfile("ghost@x.com", ProfileInput{Weight: 80})
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.RecordChallengeResult("ghost@x.com", 50)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.SetSubscription("ghost@x.com", models.TierPro)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.ChatReply("ghost@x.com", "hello")
	assert.ErrorIs(t, err, ErrNoSession)

	// nothing leaked into storage
	_, err = store.Get(storage.ProfileKey("ghost@x.com"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(storage.LogKey("ghost@x.com"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogoutDropsSessionKeepsStorage(t *testing.T) {
	m, store := newTestManager()
	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)
	_, err = m.AddFood("a@x.com", models.FoodItem{Name: "Salad"})
	require.NoError(t, err)

	m.Logout("a@x.com")

	_, err = m.Get("a@x.com")
	assert.ErrorIs(t, err, ErrNoSession)

	raw, err := store.Get(storage.LogKey("a@x.com"))
	require.NoError(t, err)
	assert.Contains(t, raw, "Salad")

	// next login restores the persisted log
	sess, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)
	require.Len(t, sess.Log, 1)
	assert.Equal(t, "Salad", sess.Log[0].Name)
}

// The once-per-day gate belongs to the caller; the manager applies whatever
// it is handed, so a double call doubles up. Asserted as expected behavior.
func TestChallengeResultAppliesBlindly(t *testing.T) {
	m, _ := newTestManager()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	m.now = func() time.Time { return now }

	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	_, err = m.RecordChallengeResult("a@x.com", 50)
	require.NoError(t, err)
	profile, err := m.RecordChallengeResult("a@x.com", 50)
	require.NoError(t, err)

	assert.Equal(t, 100, profile.Points)
	assert.Equal(t, 2, profile.Streak)
	require.NotNil(t, profile.LastQuizDate)
	assert.True(t, profile.LastQuizDate.Equal(now))
}

func TestUpdateProfilePartialEdit(t *testing.T) {
	m, store := newTestManager()
	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	profile, err := m.UpdateProfile("a@x.com", ProfileInput{Weight: 82, Goal: models.GoalWeightLoss})
	require.NoError(t, err)

	assert.Equal(t, 82.0, profile.Weight)
	assert.Equal(t, models.GoalWeightLoss, profile.Goal)
	// untouched fields keep their values
	assert.Equal(t, 180.0, profile.Height)
	assert.Equal(t, 28, profile.Age)

	raw, err := store.Get(storage.ProfileKey("a@x.com"))
	require.NoError(t, err)
	assert.Contains(t, raw, `"weight":82`)
}

func TestSetSubscriptionPersists(t *testing.T) {
	m, store := newTestManager()
	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	profile, err := m.SetSubscription("a@x.com", models.TierElite)
	require.NoError(t, err)
	assert.Equal(t, models.TierElite, profile.Subscription)

	raw, err := store.Get(storage.ProfileKey("a@x.com"))
	require.NoError(t, err)
	assert.Contains(t, raw, `"subscription":"elite"`)
}

func TestPersistedProfileCarriesSchemaVersion(t *testing.T) {
	m, store := newTestManager()
	_, err := m.Login("a@x.com", "Alice")
	require.NoError(t, err)

	raw, err := store.Get(storage.ProfileKey("a@x.com"))
	require.NoError(t, err)
	assert.Contains(t, raw, `"schema_version":1`)
}
