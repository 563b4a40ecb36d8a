package commands_test

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/core/ports"
	"fieldsync/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.DiscardHandler)

func mustJobID(t *testing.T, raw string) kernel.JobID {
	t.Helper()
	id, err := kernel.ParseJobID(raw)
	require.NoError(t, err)
	return id
}

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) GetAll(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) NextJobID(ctx context.Context) (kernel.JobID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.JobID), args.Error(1)
}

func (m *MockJobRepository) UpdateStatus(
	ctx context.Context,
	id kernel.JobID,
	status job.Status,
	note string,
) (*job.Job, error) {
	args := m.Called(ctx, id, status, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) UpdateEventID(ctx context.Context, id kernel.JobID, eventID string) error {
	args := m.Called(ctx, id, eventID)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateFields(ctx context.Context, id kernel.JobID, fields job.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type MockJobUoW struct{ mock.Mock }

func (m *MockJobUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockJobSyncer struct{ mock.Mock }

func (m *MockJobSyncer) Handle(ctx context.Context, cmd commands.SyncJobCommand) (commands.SyncResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SyncResult), args.Error(1)
}

// fakeCalendarService is an in-memory calendar service. Events live in
// per-calendar maps; failures can be injected per calendar/event pair.
type fakeCalendarService struct {
	mu        sync.Mutex
	calendars []calendar.Calendar
	events    map[string]map[string]*calendar.Event
	seq       int

	getErrs    map[string]error
	insertErr  error
	listErr    error
	inserts    int
	updates    int
	deletes    int
	searchHits int
}

func newFakeCalendarService(calendars ...calendar.Calendar) *fakeCalendarService {
	return &fakeCalendarService{
		calendars: calendars,
		events:    make(map[string]map[string]*calendar.Event),
		getErrs:   make(map[string]error),
	}
}

func (f *fakeCalendarService) put(calendarID string, event calendar.Event) *calendar.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putLocked(calendarID, event)
}

func (f *fakeCalendarService) putLocked(calendarID string, event calendar.Event) *calendar.Event {
	if event.ID == "" {
		f.seq++
		event.ID = fmt.Sprintf("evt-%d", f.seq)
	}
	event.CalendarID = calendarID
	if f.events[calendarID] == nil {
		f.events[calendarID] = make(map[string]*calendar.Event)
	}
	stored := event
	f.events[calendarID][event.ID] = &stored
	return &stored
}

func (f *fakeCalendarService) failGet(calendarID, eventID string, err error) {
	f.getErrs[calendarID+"/"+eventID] = err
}

func (f *fakeCalendarService) eventsIn(calendarID string) []*calendar.Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*calendar.Event, 0, len(f.events[calendarID]))
	for _, e := range f.events[calendarID] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (f *fakeCalendarService) ListCalendars(context.Context) ([]calendar.Calendar, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]calendar.Calendar(nil), f.calendars...), nil
}

func (f *fakeCalendarService) GetEvent(_ context.Context, calendarID, eventID string) (*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.getErrs[calendarID+"/"+eventID]; err != nil {
		return nil, err
	}
	e, ok := f.events[calendarID][eventID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("event", eventID)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeCalendarService) InsertEvent(_ context.Context, event calendar.Event) (*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserts++
	event.ID = ""
	return f.putLocked(event.CalendarID, event), nil
}

func (f *fakeCalendarService) UpdateEvent(_ context.Context, eventID string, event calendar.Event) (*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.events[event.CalendarID][eventID]; !ok {
		return nil, errs.NewObjectNotFoundError("event", eventID)
	}
	f.updates++
	event.ID = eventID
	return f.putLocked(event.CalendarID, event), nil
}

func (f *fakeCalendarService) DeleteEvent(_ context.Context, calendarID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.events[calendarID][eventID]; !ok {
		return errs.NewObjectNotFoundError("event", eventID)
	}
	f.deletes++
	delete(f.events[calendarID], eventID)
	return nil
}

func (f *fakeCalendarService) SearchEvents(_ context.Context, calendarID, query string) ([]*calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchHits++
	out := make([]*calendar.Event, 0)
	for _, e := range f.events[calendarID] {
		if strings.Contains(e.Title, query) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}
