package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sanisamoj/Borai-sub000/internal/domain"
	"github.com/sanisamoj/Borai-sub000/internal/repository"
)

func paginate[T any](items []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) Upsert(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Nick == user.Nick {
			return domain.User{}, repository.ErrUserNickExists
		}
	}
	if existing, ok := r.users[user.ID]; ok {
		user.AccountType = existing.AccountType
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []domain.User
	for i := len(ids) - 1; i >= 0; i-- {
		if u, ok := r.users[ids[i]]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]domain.Event
	votes  map[uuid.UUID][]domain.EventVote
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: make(map[uuid.UUID]domain.Event),
		votes:  make(map[uuid.UUID][]domain.EventVote),
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *fakeEventRepo) find(id uuid.UUID) (domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	e.Votes = append([]domain.EventVote(nil), r.votes[id]...)
	e.AverageScore = domain.AverageScore(e.Votes)
	return e, nil
}

func (r *fakeEventRepo) Find(_ context.Context, status domain.EventStatus, page domain.Page) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []domain.Event
	for _, e := range r.events {
		if status == "" || e.Status == status {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].OccursAt.After(events[j].OccursAt) })
	return paginate(events, page), nil
}

func (r *fakeEventRepo) Update(_ context.Context, id uuid.UUID, patch domain.EventPatch) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Address != nil {
		e.Address = *patch.Address
	}
	if patch.OccursAt != nil {
		e.OccursAt = *patch.OccursAt
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	r.events[id] = e
	return r.find(id)
}

func (r *fakeEventRepo) IncrementPresences(_ context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	e.PresencesCount += delta
	r.events[id] = e
	return nil
}

func (r *fakeEventRepo) CreateVote(_ context.Context, vote domain.EventVote) (domain.EventVote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes[vote.EventID] {
		if v.UserID == vote.UserID {
			return domain.EventVote{}, repository.ErrVoteExists
		}
	}
	vote.CreatedAt = time.Now()
	r.votes[vote.EventID] = append(r.votes[vote.EventID], vote)
	return vote, nil
}

func (r *fakeEventRepo) FindVote(_ context.Context, eventID, userID uuid.UUID) (domain.EventVote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.votes[eventID] {
		if v.UserID == userID {
			return v, nil
		}
	}
	return domain.EventVote{}, repository.ErrVoteNotFound
}

type fakePresenceRepo struct {
	mu        sync.Mutex
	presences []domain.Presence
}

func (r *fakePresenceRepo) index(eventID, userID uuid.UUID) int {
	for i, p := range r.presences {
		if p.EventID == eventID && p.UserID == userID {
			return i
		}
	}
	return -1
}

func (r *fakePresenceRepo) Create(_ context.Context, p domain.Presence) (domain.Presence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(p.EventID, p.UserID) >= 0 {
		return domain.Presence{}, repository.ErrPresenceExists
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.presences = append(r.presences, p)
	return p, nil
}

func (r *fakePresenceRepo) Find(_ context.Context, eventID, userID uuid.UUID) (domain.Presence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(eventID, userID)
	if i < 0 {
		return domain.Presence{}, repository.ErrPresenceNotFound
	}
	return r.presences[i], nil
}

func (r *fakePresenceRepo) Delete(_ context.Context, eventID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(eventID, userID)
	if i < 0 {
		return repository.ErrPresenceNotFound
	}
	r.presences = append(r.presences[:i], r.presences[i+1:]...)
	return nil
}

func (r *fakePresenceRepo) UpdateStatus(_ context.Context, eventID, userID uuid.UUID, status domain.PresenceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(eventID, userID)
	if i < 0 {
		return repository.ErrPresenceNotFound
	}
	r.presences[i].Status = status
	return nil
}

func (r *fakePresenceRepo) FindByEvent(_ context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Presence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []domain.Presence
	for _, p := range r.presences {
		if p.EventID == eventID {
			found = append(found, p)
		}
	}
	return paginate(found, page), nil
}

func (r *fakePresenceRepo) FindByEventAndUsers(_ context.Context, eventID uuid.UUID, userIDs []uuid.UUID) ([]domain.Presence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	found := []domain.Presence{}
	for _, p := range r.presences {
		if p.EventID == eventID && wanted[p.UserID] {
			found = append(found, p)
		}
	}
	return found, nil
}

func (r *fakePresenceRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.presences {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.Comment
}

func (r *fakeCommentRepo) index(id uuid.UUID) int {
	for i, c := range r.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeCommentRepo) Create(_ context.Context, c domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.New()
	c.Ups = []uuid.UUID{}
	c.CreatedAt = time.Now()
	r.comments = append(r.comments, c)
	return c, nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return domain.Comment{}, repository.ErrCommentNotFound
	}
	c := r.comments[i]
	c.Ups = append([]uuid.UUID{}, c.Ups...)
	return c, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return repository.ErrCommentNotFound
	}
	r.comments = append(r.comments[:i], r.comments[i+1:]...)
	return nil
}

func (r *fakeCommentRepo) IncrementAnswers(_ context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return repository.ErrCommentNotFound
	}
	r.comments[i].AnswersCount += delta
	return nil
}

func (r *fakeCommentRepo) AddUp(_ context.Context, commentID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(commentID)
	if i < 0 {
		return repository.ErrCommentNotFound
	}
	if r.comments[i].HasUp(userID) {
		return repository.ErrUpExists
	}
	r.comments[i].Ups = append(r.comments[i].Ups, userID)
	return nil
}

func (r *fakeCommentRepo) RemoveUp(_ context.Context, commentID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(commentID)
	if i < 0 {
		return repository.ErrCommentNotFound
	}
	ups := r.comments[i].Ups
	for j, id := range ups {
		if id == userID {
			r.comments[i].Ups = append(ups[:j:j], ups[j+1:]...)
			return nil
		}
	}
	return repository.ErrUpNotFound
}

func (r *fakeCommentRepo) FindByEvent(_ context.Context, eventID uuid.UUID, page domain.Page) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := []domain.Comment{}
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].EventID == eventID {
			found = append(found, r.comments[i])
		}
	}
	return paginate(found, page), nil
}

func (r *fakeCommentRepo) FindReplies(_ context.Context, parentID uuid.UUID, page domain.Page) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := []domain.Comment{}
	for i := len(r.comments) - 1; i >= 0; i-- {
		c := r.comments[i]
		if c.ParentID != nil && *c.ParentID == parentID {
			found = append(found, c)
		}
	}
	return paginate(found, page), nil
}

type followKey struct {
	follower, following uuid.UUID
}

type fakeFollowRepo struct {
	mu      sync.Mutex
	follows map[followKey]domain.Follow
	order   []followKey
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[followKey]domain.Follow)}
}

func (r *fakeFollowRepo) Create(_ context.Context, f domain.Follow) (domain.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := followKey{f.FollowerID, f.FollowingID}
	if _, ok := r.follows[key]; ok {
		return domain.Follow{}, repository.ErrFollowExists
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	r.follows[key] = f
	r.order = append(r.order, key)
	return f, nil
}

func (r *fakeFollowRepo) Find(_ context.Context, followerID, followingID uuid.UUID) (domain.Follow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.follows[followKey{followerID, followingID}]
	if !ok {
		return domain.Follow{}, repository.ErrFollowNotFound
	}
	return f, nil
}

func (r *fakeFollowRepo) UpdateStatus(_ context.Context, followerID, followingID uuid.UUID, from, to domain.FollowStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := followKey{followerID, followingID}
	f, ok := r.follows[key]
	if !ok || f.Status != from {
		return repository.ErrFollowNotFound
	}
	f.Status = to
	r.follows[key] = f
	return nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, followerID, followingID uuid.UUID, status domain.FollowStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := followKey{followerID, followingID}
	f, ok := r.follows[key]
	if !ok || f.Status != status {
		return repository.ErrFollowNotFound
	}
	delete(r.follows, key)
	return nil
}

func (r *fakeFollowRepo) collect(match func(followKey, domain.Follow) (uuid.UUID, bool)) []uuid.UUID {
	ids := []uuid.UUID{}
	for _, key := range r.order {
		f, ok := r.follows[key]
		if !ok {
			continue
		}
		if id, ok := match(key, f); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *fakeFollowRepo) FindFollowerIDs(_ context.Context, userID uuid.UUID, status domain.FollowStatus, page domain.Page) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.collect(func(k followKey, f domain.Follow) (uuid.UUID, bool) {
		return k.follower, k.following == userID && f.Status == status
	})
	return paginate(ids, page), nil
}

func (r *fakeFollowRepo) FindFollowingIDs(_ context.Context, userID uuid.UUID, status domain.FollowStatus, page domain.Page) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.collect(func(k followKey, f domain.Follow) (uuid.UUID, bool) {
		return k.following, k.follower == userID && f.Status == status
	})
	return paginate(ids, page), nil
}

func (r *fakeFollowRepo) FindMutualIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(k followKey, f domain.Follow) (uuid.UUID, bool) {
		if k.following != userID || f.Status != domain.FollowAccepted {
			return uuid.Nil, false
		}
		back, ok := r.follows[followKey{userID, k.follower}]
		return k.follower, ok && back.Status == domain.FollowAccepted
	}), nil
}

func (r *fakeFollowRepo) Count(_ context.Context, userID uuid.UUID) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var followers, following int64
	for k, f := range r.follows {
		if f.Status != domain.FollowAccepted {
			continue
		}
		if k.following == userID {
			followers++
		}
		if k.follower == userID {
			following++
		}
	}
	return followers, following, nil
}

type pointsKey struct {
	userID   uuid.UUID
	criteria domain.InsigniaCriteria
}

type fakeInsigniaRepo struct {
	mu        sync.Mutex
	insignias []domain.Insignia
	points    map[pointsKey]float64
	owned     map[uuid.UUID][]domain.OwnedInsignia
	grants    int
	reachErr  error
}

func newFakeInsigniaRepo() *fakeInsigniaRepo {
	return &fakeInsigniaRepo{
		points: make(map[pointsKey]float64),
		owned:  make(map[uuid.UUID][]domain.OwnedInsignia),
	}
}

func (r *fakeInsigniaRepo) Create(_ context.Context, insignia domain.Insignia) (domain.Insignia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.insignias {
		if i.Name == insignia.Name {
			return domain.Insignia{}, repository.ErrInsigniaExists
		}
	}
	if insignia.ID == uuid.Nil {
		insignia.ID = uuid.New()
	}
	insignia.CreatedAt = time.Now()
	r.insignias = append(r.insignias, insignia)
	return insignia, nil
}

func (r *fakeInsigniaRepo) FindAll(_ context.Context) ([]domain.Insignia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Insignia{}, r.insignias...), nil
}

func (r *fakeInsigniaRepo) FindByID(_ context.Context, id uuid.UUID) (domain.Insignia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.insignias {
		if i.ID == id {
			return i, nil
		}
	}
	return domain.Insignia{}, repository.ErrInsigniaNotFound
}

func (r *fakeInsigniaRepo) FindReached(_ context.Context, criteria domain.InsigniaCriteria, score float64) ([]domain.Insignia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reachErr != nil {
		return nil, r.reachErr
	}
	var reached []domain.Insignia
	for _, i := range r.insignias {
		if i.Criteria == criteria && i.Quantity <= score {
			reached = append(reached, i)
		}
	}
	return reached, nil
}

func (r *fakeInsigniaRepo) IncrementPoints(_ context.Context, userID uuid.UUID, criteria domain.InsigniaCriteria, delta float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pointsKey{userID, criteria}
	r.points[key] += delta
	return r.points[key], nil
}

func (r *fakeInsigniaRepo) FindPoints(_ context.Context, userID uuid.UUID) (map[domain.InsigniaCriteria]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	points := make(map[domain.InsigniaCriteria]float64)
	for k, v := range r.points {
		if k.userID == userID {
			points[k.criteria] = v
		}
	}
	return points, nil
}

func (r *fakeInsigniaRepo) Grant(_ context.Context, userID uuid.UUID, insigniaIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants++
	for _, id := range insigniaIDs {
		if r.ownedIndex(userID, id) >= 0 {
			continue
		}
		for _, i := range r.insignias {
			if i.ID == id {
				r.owned[userID] = append(r.owned[userID], domain.OwnedInsignia{Insignia: i, UnlockedAt: time.Now()})
			}
		}
	}
	return nil
}

func (r *fakeInsigniaRepo) ownedIndex(userID, insigniaID uuid.UUID) int {
	for i, o := range r.owned[userID] {
		if o.ID == insigniaID {
			return i
		}
	}
	return -1
}

func (r *fakeInsigniaRepo) FindOwned(_ context.Context, userID uuid.UUID) ([]domain.OwnedInsignia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.OwnedInsignia{}, r.owned[userID]...), nil
}

func (r *fakeInsigniaRepo) SetVisible(_ context.Context, userID, insigniaID uuid.UUID, visible bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.ownedIndex(userID, insigniaID)
	if i < 0 {
		return repository.ErrNotOwned
	}
	r.owned[userID][i].Visible = visible
	return nil
}

func (r *fakeInsigniaRepo) score(userID uuid.UUID, criteria domain.InsigniaCriteria) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[pointsKey{userID, criteria}]
}

type pushed struct {
	userID uuid.UUID
	kind   string
	text   string
}

type fakeNotifier struct {
	mu     sync.Mutex
	pushes []pushed
	mails  []string
}

func (n *fakeNotifier) Push(userID uuid.UUID, kind, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, pushed{userID, kind, text})
}

func (n *fakeNotifier) Mail(to, subject, html string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mails = append(n.mails, to)
}

func (n *fakeNotifier) pushesTo(userID uuid.UUID, kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, p := range n.pushes {
		if p.userID == userID && p.kind == kind {
			count++
		}
	}
	return count
}

type testEnv struct {
	users     *fakeUserRepo
	events    *fakeEventRepo
	presences *fakePresenceRepo
	comments  *fakeCommentRepo
	follows   *fakeFollowRepo
	insignias *fakeInsigniaRepo
	notifier  *fakeNotifier

	achievements *AchievementService
	followSvc    *FollowService
	commentSvc   *CommentService
	engagement   *EngagementService
	eventSvc     *EventService
	userSvc      *UserService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:     newFakeUserRepo(),
		events:    newFakeEventRepo(),
		presences: &fakePresenceRepo{},
		comments:  &fakeCommentRepo{},
		follows:   newFakeFollowRepo(),
		insignias: newFakeInsigniaRepo(),
		notifier:  &fakeNotifier{},
	}

	env.achievements = NewAchievementService(env.insignias, env.users, env.notifier, DefaultMaxVisibleInsignias)
	env.followSvc = NewFollowService(env.follows, env.users, env.achievements, env.notifier)
	env.commentSvc = NewCommentService(env.comments, env.events, env.users, env.achievements, env.notifier)
	env.engagement = NewEngagementService(env.presences, env.events, env.users, env.followSvc, env.achievements)
	env.eventSvc = NewEventService(env.events, env.users, env.achievements)
	env.userSvc = NewUserService(env.users, env.followSvc, env.presences, env.achievements)

	return env
}

func (env *testEnv) addUser(t *testing.T, nick string) domain.User {
	t.Helper()
	u, err := env.users.Upsert(context.Background(), domain.User{
		ID:          uuid.New(),
		Nick:        nick,
		Email:       nick + "@example.com",
		AccountType: domain.AccountTypeUser,
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) addAdmin(t *testing.T, nick string) domain.User {
	t.Helper()
	u, err := env.users.Upsert(context.Background(), domain.User{
		ID:          uuid.New(),
		Nick:        nick,
		AccountType: domain.AccountTypeAdmin,
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) addEvent(t *testing.T, creator domain.User, status domain.EventStatus) domain.Event {
	t.Helper()
	e, err := env.events.Create(context.Background(), domain.Event{
		CreatorID: creator.ID,
		Name:      "Jazz night",
		Status:    status,
		OccursAt:  time.Now(),
	})
	require.NoError(t, err)
	return e
}

func (env *testEnv) addInsignia(t *testing.T, name string, criteria domain.InsigniaCriteria, quantity float64) domain.Insignia {
	t.Helper()
	i, err := env.insignias.Create(context.Background(), domain.Insignia{
		Name:     name,
		Criteria: criteria,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return i
}

func firstPage() domain.Page {
	return domain.Page{Number: 1, Size: domain.DefaultPageSize}
}
