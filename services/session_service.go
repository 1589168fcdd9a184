package services

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/farouk24967/NutriVision/models"
	"github.com/farouk24967/NutriVision/storage"

	"github.com/google/uuid"
)

// ErrNoSession is returned by every mutation attempted for an identity that
// is not currently logged in; no storage write may happen in that state.
var ErrNoSession = errors.New("no active session for identity")

// Session owns one authenticated identity's in-memory state. The in-memory
// copies are the source of truth while the session lives; storage is a
// write-through mirror.
type Session struct {
	Identity string
	Profile  models.UserProfile
	Log      []models.FoodItem
	chat     *ChatSession
}

// SessionManager is the lifecycle manager for authenticated sessions. It is
// safe for concurrent use; each identity's data stays in its own storage
// partition and never leaks across identities.
type SessionManager struct {
	mu       sync.Mutex
	store    storage.Store
	gemini   *GeminiService
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionManager(store storage.Store, gemini *GeminiService) *SessionManager {
	return &SessionManager{
		store:    store,
		gemini:   gemini,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Sessions is the process-wide manager used by the controllers, set up once
// in main via InitSessions.
var Sessions *SessionManager

func InitSessions(store storage.Store, gemini *GeminiService) {
	Sessions = NewSessionManager(store, gemini)
}

// storedProfile mirrors models.UserProfile with pointer fields so that a
// previously saved blob can be reconciled over fresh defaults field by
// field: present fields win, absent ones keep their default.
type storedProfile struct {
	SchemaVersion  *int        `json:"schema_version"`
	Name           *string     `json:"name"`
	Gender         *string     `json:"gender"`
	Age            *int        `json:"age"`
	Weight         *float64    `json:"weight"`
	Height         *float64    `json:"height"`
	Goal           *string     `json:"goal"`
	ActivityLevel  *string     `json:"activity_level"`
	Streak         *int        `json:"streak"`
	LastActiveDate *time.Time `json:"last_active_date"`
	LastQuizDate   *time.Time `json:"last_quiz_date"`
	Points         *int       `json:"points"`
	Subscription   *string    `json:"subscription"`
}

func reconcileProfile(defaults models.UserProfile, raw string) models.UserProfile {
	var sp storedProfile
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		return defaults
	}

	p := defaults
	if sp.Name != nil {
		p.Name = *sp.Name
	}
	if sp.Gender != nil {
		p.Gender = *sp.Gender
	}
	if sp.Age != nil {
		p.Age = *sp.Age
	}
	if sp.Weight != nil {
		p.Weight = *sp.Weight
	}
	if sp.Height != nil {
		p.Height = *sp.Height
	}
	if sp.Goal != nil {
		p.Goal = *sp.Goal
	}
	if sp.ActivityLevel != nil {
		p.ActivityLevel = *sp.ActivityLevel
	}
	if sp.Streak != nil {
		p.Streak = *sp.Streak
	}
	if sp.LastActiveDate != nil {
		p.LastActiveDate = *sp.LastActiveDate
	}
	if sp.LastQuizDate != nil {
		p.LastQuizDate = sp.LastQuizDate
	}
	if sp.Points != nil {
		p.Points = *sp.Points
	}
	if sp.Subscription != nil {
		p.Subscription = *sp.Subscription
	}
	p.SchemaVersion = models.ProfileSchemaVersion
	return p
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

// Login loads (or initializes) the profile and food log for the identity,
// applies the streak-continuity rule, stamps lastActiveDate and replaces any
// previous session for the identity. A fresh identity always starts with an
// empty log, even when a stale log blob exists under its key. The display
// name always overrides whatever name was saved.
func (m *SessionManager) Login(identity, displayName string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	profile := models.DefaultProfile(displayName)
	profile.LastActiveDate = now

	freshIdentity := true
	if raw, err := m.store.Get(storage.ProfileKey(identity)); err == nil {
		var probe storedProfile
		if json.Unmarshal([]byte(raw), &probe) == nil {
			profile = reconcileProfile(profile, raw)
			freshIdentity = false
		}
	}
	profile.Name = displayName

	// Streak continuity: anything older than yesterday breaks the chain.
	// Login itself never increments the streak.
	yesterday := now.AddDate(0, 0, -1)
	if !sameCalendarDay(profile.LastActiveDate, now) && !sameCalendarDay(profile.LastActiveDate, yesterday) {
		profile.Streak = 0
	}
	profile.LastActiveDate = now

	log := []models.FoodItem{}
	if !freshIdentity {
		if raw, err := m.store.Get(storage.LogKey(identity)); err == nil {
			var items []models.FoodItem
			if json.Unmarshal([]byte(raw), &items) == nil && items != nil {
				log = items
			}
		}
	}

	sess := &Session{Identity: identity, Profile: profile, Log: log}
	m.sessions[identity] = sess

	if err := m.saveProfile(sess); err != nil {
		return nil, err
	}
	if err := m.saveLog(sess); err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

// Logout drops the in-memory session and with it the conversational
// context. The persisted blobs stay untouched for the next login.
func (m *SessionManager) Logout(identity string) {
	m.mu.Lock()
	delete(m.sessions, identity)
	m.mu.Unlock()
}

// Get returns a snapshot of the identity's session state.
func (m *SessionManager) Get(identity string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[identity]
	if !ok {
		return nil, ErrNoSession
	}
	return sess.snapshot(), nil
}

// AddFood confirms an analyzed item into the daily log, newest first.
// Entries are immutable once created; there is no single-item delete.
func (m *SessionManager) AddFood(identity string, item models.FoodItem) (models.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[identity]
	if !ok {
		return models.FoodItem{}, ErrNoSession
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = m.now()
	}
	sess.Log = append([]models.FoodItem{item}, sess.Log...)

	return item, m.saveLog(sess)
}

// ProfileInput carries a partial profile edit; zero values leave the
// current field untouched.
type ProfileInput struct {
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
}

func (m *SessionManager) UpdateProfile(identity string, input ProfileInput) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[identity]
	if !ok {
		return models.UserProfile{}, ErrNoSession
	}

	if input.Gender != "" {
		sess.Profile.Gender = input.Gender
	}
	if input.Age > 0 {
		sess.Profile.Age = input.Age
	}
	if input.Weight > 0 {
		sess.Profile.Weight = input.Weight
	}
	if input.Height > 0 {
		sess.Profile.Height = input.Height
	}
	if input.Goal != "" {
		sess.Profile.Goal = input.Goal
	}
	if input.ActivityLevel != "" {
		sess.Profile.ActivityLevel = input.ActivityLevel
	}

	return sess.Profile, m.saveProfile(sess)
}

// RecordChallengeResult applies a completed daily challenge: points are
// added, the streak advances by one and lastQuizDate moves to today. The
// once-per-day gate is the caller's job; repeated calls apply repeatedly.
func (m *SessionManager) RecordChallengeResult(identity string, pointsEarned int) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[identity]
	if !ok {
		return models.UserProfile{}, ErrNoSession
	}

	now := m.now()
	sess.Profile.Points += pointsEarned
	sess.Profile.Streak++
	sess.Profile.LastQuizDate = &now

	return sess.Profile, m.saveProfile(sess)
}

func (m *SessionManager) SetSubscription(identity, tier string) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[identity]
	if !ok {
		return models.UserProfile{}, ErrNoSession
	}

	sess.Profile.Subscription = tier
	return sess.Profile, m.saveProfile(sess)
}

// ChatReply forwards a message to the identity's conversational context,
// creating it from the current profile on first use. Contexts never survive
// logout or an identity switch.
func (m *SessionManager) ChatReply(identity, text string) (string, error) {
	m.mu.Lock()
	sess, ok := m.sessions[identity]
	if !ok {
		m.mu.Unlock()
		return "", ErrNoSession
	}
	if sess.chat == nil {
		sess.chat = m.gemini.NewChatSession(sess.Profile)
	}
	chat := sess.chat
	m.mu.Unlock()

	// Network call happens outside the manager lock; the chat session has
	// its own serialization.
	return chat.SendMessage(text), nil
}

func (m *SessionManager) saveProfile(sess *Session) error {
	b, err := json.Marshal(sess.Profile)
	if err != nil {
		return err
	}
	return m.store.Set(storage.ProfileKey(sess.Identity), string(b))
}

func (m *SessionManager) saveLog(sess *Session) error {
	b, err := json.Marshal(sess.Log)
	if err != nil {
		return err
	}
	return m.store.Set(storage.LogKey(sess.Identity), string(b))
}

func (s *Session) snapshot() *Session {
	log := make([]models.FoodItem, len(s.Log))
	copy(log, s.Log)
	return &Session{Identity: s.Identity, Profile: s.Profile, Log: log}
}
