package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sports-portal/internal/approval"
	"sports-portal/internal/identity"
	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/storage"
)

// memoryStore backs the user, player, token, notification and certificate fakes with
// one set of maps so a test can follow an account across services.
type memoryStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*model.User
	players       map[uuid.UUID]*model.Player
	tokens        map[string]*model.RefreshToken
	notifications []model.Notification
	certificates  []model.Certificate
	devices       map[string]uuid.UUID
	teams         map[uuid.UUID]*model.Team
	members       map[uuid.UUID][]uuid.UUID

	createCalls int
	failCreate  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:   map[uuid.UUID]*model.User{},
		players: map[uuid.UUID]*model.Player{},
		tokens:  map[string]*model.RefreshToken{},
		devices: map[string]uuid.UUID{},
		teams:   map[uuid.UUID]*model.Team{},
		members: map[uuid.UUID][]uuid.UUID{},
	}
}

type fakeUserRepo struct{ s *memoryStore }

func (r fakeUserRepo) CreatePlayerAccount(_ context.Context, user *model.User, player *model.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.createCalls++
	if r.s.failCreate != nil {
		return r.s.failCreate
	}

	handles := map[string]bool{}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return &repository.UniquenessConflict{Field: "email"}
		}
		handles[u.Handle] = true
	}
	base := user.Handle
	for attempt := 0; ; attempt++ {
		if attempt == identity.MaxHandleAttempts {
			return &repository.UniquenessConflict{Field: "handle"}
		}
		if h := identity.HandleCandidate(base, attempt); !handles[h] {
			user.Handle = h
			break
		}
	}

	user.ID = uuid.New()
	user.IsActive = true
	user.CreatedAt = time.Now()
	player.ID = uuid.New()
	player.UserID = user.ID
	u, p := *user, *player
	r.s.users[user.ID] = &u
	r.s.players[player.ID] = &p
	return nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func (r fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r fakeUserRepo) UpdateProfile(_ context.Context, user *model.User, player *model.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	u, p := *user, *player
	r.s.users[user.ID] = &u
	r.s.players[player.ID] = &p
	return nil
}

func (r fakeUserRepo) SetStatus(_ context.Context, ids []uuid.UUID, to approval.Status) ([]repository.StatusChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.s.users[id]; !ok {
			return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
		}
	}

	var changes []repository.StatusChange
	for _, id := range ids {
		u := r.s.users[id]
		changed, err := approval.Transition(u.Status, to)
		if err != nil {
			return nil, err
		}
		if !changed {
			continue
		}
		from := u.Status
		u.Status = to
		u.IsApproved = approval.IsApproved(to)
		title, message := approval.Notice(to)
		recipient := id
		n := model.Notification{ID: uuid.New(), Title: title, Message: message, RecipientID: &recipient, CreatedAt: time.Now()}
		r.s.notifications = append(r.s.notifications, n)
		changes = append(changes, repository.StatusChange{UserID: id, From: from, To: to, NotificationID: n.ID, Title: title, Message: message})
	}
	return changes, nil
}

type fakePlayerRepo struct{ s *memoryStore }

func (r fakePlayerRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakePlayerRepo) ListSummaries(context.Context) ([]model.PlayerSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.PlayerSummary
	for _, p := range r.s.players {
		u := r.s.users[p.UserID]
		out = append(out, model.PlayerSummary{ID: p.ID, UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, SportID: p.SportID, IsPlayer: u.IsPlayer})
	}
	return out, nil
}

func (r fakePlayerRepo) LatestTeam(_ context.Context, playerID uuid.UUID) (*model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for teamID, members := range r.s.members {
		for _, m := range members {
			if m == playerID {
				return r.s.teams[teamID], nil
			}
		}
	}
	return nil, nil
}

func (r fakePlayerRepo) Teammates(_ context.Context, teamID, exclude uuid.UUID) ([]model.PlayerSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.PlayerSummary{}
	for _, m := range r.s.members[teamID] {
		if m == exclude {
			continue
		}
		p := r.s.players[m]
		u := r.s.users[p.UserID]
		out = append(out, model.PlayerSummary{ID: p.ID, UserID: u.ID, FirstName: u.FirstName, SportID: p.SportID, IsPlayer: true})
	}
	return out, nil
}

type fakeTokenRepo struct{ s *memoryStore }

func (r fakeTokenRepo) Create(_ context.Context, t *model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.tokens[t.TokenHash] = &cp
	return nil
}

func (r fakeTokenRepo) FindValid(_ context.Context, hash string) (*model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[hash]
	if !ok || !t.ExpiresAt.After(time.Now()) {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r fakeTokenRepo) Delete(_ context.Context, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tokens, hash)
	return nil
}

func (r fakeTokenRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for h, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, h)
		}
	}
	return nil
}

type fakeNotificationRepo struct{ s *memoryStore }

func (r fakeNotificationRepo) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.RecipientID != nil {
		if _, ok := r.s.users[*n.RecipientID]; !ok {
			return nil, repository.ErrNotFound
		}
	}
	cp := *n
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	r.s.notifications = append(r.s.notifications, cp)
	return &cp, nil
}

func (r fakeNotificationRepo) ListPersonal(_ context.Context, userID uuid.UUID) ([]model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Notification{}
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if !n.IsGeneral && n.RecipientID != nil && *n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r fakeNotificationRepo) ListGeneral(_ context.Context, limit int) ([]model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Notification{}
	for i := len(r.s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.notifications[i].IsGeneral {
			out = append(out, r.s.notifications[i])
		}
	}
	return out, nil
}

type fakeCertificateRepo struct{ s *memoryStore }

func (r fakeCertificateRepo) Create(_ context.Context, c *model.Certificate) (*model.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[c.PlayerID]; !ok {
		return nil, fmt.Errorf("player %s: %w", c.PlayerID, repository.ErrNotFound)
	}
	cp := *c
	cp.ID = uuid.New()
	cp.UploadedAt = time.Now()
	r.s.certificates = append(r.s.certificates, cp)
	return &cp, nil
}

func (r fakeCertificateRepo) ListByPlayer(_ context.Context, playerID uuid.UUID) ([]model.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Certificate{}
	for i := len(r.s.certificates) - 1; i >= 0; i-- {
		if r.s.certificates[i].PlayerID == playerID {
			out = append(out, r.s.certificates[i])
		}
	}
	return out, nil
}

func (r fakeCertificateRepo) FindOwned(_ context.Context, certID, userID uuid.UUID) (*model.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.certificates {
		if c.ID == certID && r.s.players[c.PlayerID].UserID == userID {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeDeviceRepo struct{ s *memoryStore }

func (r fakeDeviceRepo) Register(_ context.Context, userID uuid.UUID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.devices[token] = userID
	return nil
}

func (r fakeDeviceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for tok, id := range r.s.devices {
		if id == userID {
			out = append(out, tok)
		}
	}
	return out, nil
}

func (r fakeDeviceRepo) ListAll(context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for tok := range r.s.devices {
		out = append(out, tok)
	}
	return out, nil
}

type fakeSportRepo struct {
	sports  []model.Sport
	coaches []model.Coach
}

func (r *fakeSportRepo) List(context.Context) ([]model.Sport, error) { return r.sports, nil }

func (r *fakeSportRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range r.sports {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSportRepo) ListCoaches(context.Context) ([]model.Coach, error) { return r.coaches, nil }

type fakeFeedbackRepo struct{ saved []model.Feedback }

func (r *fakeFeedbackRepo) Create(_ context.Context, fb *model.Feedback) error {
	fb.ID = uuid.New()
	fb.SubmittedAt = time.Now()
	r.saved = append(r.saved, *fb)
	return nil
}

type recordingPublisher struct {
	mu            sync.Mutex
	registered    []uuid.UUID
	statusChanges []repository.StatusChange
	notifications []model.Notification
}

func (p *recordingPublisher) PublishPlayerRegistered(user *model.User, _ *model.Player) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, user.ID)
	return nil
}

func (p *recordingPublisher) PublishStatusChanged(change repository.StatusChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusChanges = append(p.statusChanges, change)
	return nil
}

func (p *recordingPublisher) PublishNotificationCreated(n *model.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, *n)
	return nil
}

type fakeObjectStore struct {
	objects map[string][]byte
}

func (s *fakeObjectStore) URL(_ context.Context, key string) (string, error) {
	return "https://media.test/" + key, nil
}

func (s *fakeObjectStore) UploadURL(_ context.Context, key string) (string, error) {
	return "https://upload.test/" + key + "?sig=1", nil
}

func (s *fakeObjectStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
