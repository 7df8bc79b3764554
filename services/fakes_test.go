package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"skillswap_server/models"
	"skillswap_server/utils"
)

// In-memory implementations of the store interfaces, plus a stepping clock and
// a manual scheduler, so the services run deterministically without DynamoDB.

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

// Now steps forward 1ms per call so consecutive timestamps are strictly increasing.
func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

type memDirectory struct {
	mu      sync.Mutex
	persons map[string]models.Person
}

func newMemDirectory() *memDirectory {
	return &memDirectory{persons: make(map[string]models.Person)}
}

func (d *memDirectory) GetPerson(_ context.Context, personID string) (*models.Person, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.persons[personID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (d *memDirectory) PutPerson(_ context.Context, person *models.Person) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.persons[person.PersonID] = *person
	return nil
}

func (d *memDirectory) ListVisiblePersons(_ context.Context, viewerID string) ([]models.Person, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.Person
	for _, p := range d.persons {
		if p.IsSynthetic && p.OwnerID != viewerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type memInterests struct {
	mu    sync.Mutex
	edges map[string]models.InterestEdge // "from|to"
}

func newMemInterests() *memInterests {
	return &memInterests{edges: make(map[string]models.InterestEdge)}
}

func (s *memInterests) key(from, to string) string { return from + "|" + to }

func (s *memInterests) GetEdge(_ context.Context, fromID, toID string) (*models.InterestEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.edges[s.key(fromID, toID)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *memInterests) PutEdge(_ context.Context, edge *models.InterestEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[s.key(edge.FromID, edge.ToID)] = *edge
	return nil
}

func (s *memInterests) DeleteEdge(_ context.Context, fromID, toID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edges, s.key(fromID, toID))
	return nil
}

func (s *memInterests) ListEdgesFrom(_ context.Context, fromID string) ([]models.InterestEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.InterestEdge
	for _, e := range s.edges {
		if e.FromID == fromID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memInterests) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}

type memMeetings struct {
	mu    sync.Mutex
	byRel map[string]models.Meeting
}

func newMemMeetings() *memMeetings {
	return &memMeetings{byRel: make(map[string]models.Meeting)}
}

func (s *memMeetings) GetByRelationship(_ context.Context, relationshipID string) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byRel[relationshipID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *memMeetings) GetByMeetingID(_ context.Context, meetingID string) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.byRel {
		if m.MeetingID == meetingID {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memMeetings) PutMeeting(_ context.Context, meeting *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRel[meeting.RelationshipID] = *meeting
	return nil
}

type memChats struct {
	mu       sync.Mutex
	sessions map[string]models.ChatSession
	messages map[string][]models.Message
}

func newMemChats() *memChats {
	return &memChats{
		sessions: make(map[string]models.ChatSession),
		messages: make(map[string][]models.Message),
	}
}

func (s *memChats) GetSession(_ context.Context, relationshipID string) (*models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[relationshipID]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *memChats) CreateSession(_ context.Context, session *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.RelationshipID] = *session
	return nil
}

func (s *memChats) RecordIncoming(_ context.Context, relationshipID, recipientID, at string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[relationshipID]
	if recipientID == sess.PartyA {
		sess.UnreadA++
	} else {
		sess.UnreadB++
	}
	sess.MessageCount++
	sess.LastMessageAt = at
	s.sessions[relationshipID] = sess
	return nil
}

func (s *memChats) SetStage(_ context.Context, relationshipID, stage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[relationshipID]
	sess.Stage = stage
	s.sessions[relationshipID] = sess
	return nil
}

func (s *memChats) ResetUnread(_ context.Context, relationshipID, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[relationshipID]
	if personID == sess.PartyA {
		sess.UnreadA = 0
	} else {
		sess.UnreadB = 0
	}
	s.sessions[relationshipID] = sess
	return nil
}

func (s *memChats) ListSessionsFor(_ context.Context, personID string) ([]models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatSession
	for _, sess := range s.sessions {
		if sess.PartyA == personID || sess.PartyB == personID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *memChats) AppendMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[message.RelationshipID] = append(s.messages[message.RelationshipID], *message)
	return nil
}

func (s *memChats) ListMessages(_ context.Context, relationshipID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Message(nil), s.messages[relationshipID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (s *memChats) ListMessagesSince(ctx context.Context, relationshipID, sinceTimestamp string) ([]models.Message, error) {
	all, err := s.ListMessages(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	var out []models.Message
	for _, m := range all {
		if m.CreatedAt > sinceTimestamp {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memChats) MarkMessagesRead(_ context.Context, relationshipID, readerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flipped := 0
	msgs := s.messages[relationshipID]
	for i := range msgs {
		if msgs[i].RecipientID == readerID && msgs[i].IsUnread {
			msgs[i].IsUnread = false
			flipped++
		}
	}
	return flipped, nil
}

// fakeScheduler records scheduled callbacks; tests fire them by hand.
type fakeScheduler struct {
	mu        sync.Mutex
	pending   map[string]func()
	scheduled int
	replaced  int
	delays    []time.Duration
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[string]func())}
}

func (f *fakeScheduler) Schedule(key string, delay time.Duration, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pending[key]; ok {
		f.replaced++
	}
	f.pending[key] = fn
	f.scheduled++
	f.delays = append(f.delays, delay)
}

func (f *fakeScheduler) Cancel(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pending[key]
	delete(f.pending, key)
	return ok
}

func (f *fakeScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = make(map[string]func())
}

// fire runs and removes key's pending callback, reporting whether one existed.
func (f *fakeScheduler) fire(key string) bool {
	f.mu.Lock()
	fn, ok := f.pending[key]
	delete(f.pending, key)
	f.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

func (f *fakeScheduler) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// env bundles the fully wired service graph over the in-memory stores.
type env struct {
	directory *memDirectory
	interests *memInterests
	meetings  *memMeetings
	chats     *memChats
	clock     *fakeClock
	scheduler *fakeScheduler

	interestSvc *InterestService
	matchSvc    *MatchService
	meetingSvc  *MeetingService
	chatSvc     *ChatService
}

func newEnv() *env {
	e := &env{
		directory: newMemDirectory(),
		interests: newMemInterests(),
		meetings:  newMemMeetings(),
		chats:     newMemChats(),
		clock:     newFakeClock(),
		scheduler: newFakeScheduler(),
	}
	e.interestSvc = &InterestService{Directory: e.directory, Interests: e.interests, Clock: e.clock}
	e.matchSvc = &MatchService{Directory: e.directory, Interests: e.interests}
	e.meetingSvc = &MeetingService{Directory: e.directory, Meetings: e.meetings, Ledger: e.interestSvc, Clock: e.clock}
	e.chatSvc = &ChatService{Directory: e.directory, Ledger: e.interestSvc, Chats: e.chats, Clock: e.clock}
	return e
}

func (e *env) addPerson(t *testing.T, id, name string, lat, lon float64, offers, needs []string) {
	t.Helper()
	person := &models.Person{
		PersonID:      id,
		Name:          name,
		Latitude:      &lat,
		Longitude:     &lon,
		SkillsOffered: offers,
		SkillsNeeded:  needs,
		CreatedAt:     utils.FormatTimestamp(e.clock.Now()),
	}
	if err := e.directory.PutPerson(context.Background(), person); err != nil {
		t.Fatalf("PutPerson(%s): %v", id, err)
	}
}

func (e *env) addSynthetic(t *testing.T, id, name, ownerID string, lat, lon float64, offers, needs []string) {
	t.Helper()
	person := &models.Person{
		PersonID:      id,
		Name:          name,
		Latitude:      &lat,
		Longitude:     &lon,
		SkillsOffered: offers,
		SkillsNeeded:  needs,
		IsSynthetic:   true,
		OwnerID:       ownerID,
		CreatedAt:     utils.FormatTimestamp(e.clock.Now()),
	}
	if err := e.directory.PutPerson(context.Background(), person); err != nil {
		t.Fatalf("PutPerson(%s): %v", id, err)
	}
}

// makeMutual expresses interest in both directions.
func (e *env) makeMutual(t *testing.T, a, b string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := e.interestSvc.ExpressInterest(ctx, a, b); err != nil {
		t.Fatalf("ExpressInterest(%s, %s): %v", a, b, err)
	}
	result, err := e.interestSvc.ExpressInterest(ctx, b, a)
	if err != nil {
		t.Fatalf("ExpressInterest(%s, %s): %v", b, a, err)
	}
	return result.RelationshipID
}
