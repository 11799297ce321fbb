package service

import (
	"context"
	"sync"

	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/whatsapp"
)

type fakeHostels struct {
	mu      sync.Mutex
	rows    map[uint64]*model.HostelBooking
	err     error
	calls   int
	nextID  uint64
	display map[uint64]string
	setErr  error
}

func (f *fakeHostels) GetByID(_ context.Context, id uint64) (*model.HostelBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeHostels) Create(_ context.Context, b *model.HostelBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	b.ID = f.nextID
	if f.rows == nil {
		f.rows = map[uint64]*model.HostelBooking{}
	}
	f.rows[b.ID] = b
	return nil
}

func (f *fakeHostels) SetDisplayID(_ context.Context, id uint64, displayID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.display == nil {
		f.display = map[uint64]string{}
	}
	f.display[id] = displayID
	return nil
}

type fakeAuditoriums struct {
	mu     sync.Mutex
	rows   map[uint64]*model.AuditoriumBooking
	err    error
	calls  int
	nextID uint64
}

func (f *fakeAuditoriums) GetByID(_ context.Context, id uint64) (*model.AuditoriumBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeAuditoriums) Create(_ context.Context, b *model.AuditoriumBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	return nil
}

type fakeSender struct {
	mu    sync.Mutex
	reqs  []whatsapp.ConfirmationRequest
	err   error
	panic bool
}

func (f *fakeSender) SendConfirmation(_ context.Context, req whatsapp.ConfirmationRequest) (*whatsapp.SendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panic {
		panic("provider exploded")
	}
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &whatsapp.SendResponse{Success: true, MessageID: "wamid.1"}, nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

type fakeSettings struct {
	settings model.Settings
	err      error
	calls    int
}

func (f *fakeSettings) Get(context.Context) (model.Settings, error) {
	f.calls++
	return f.settings, f.err
}

type fakePublisher struct {
	events []queue.BookingCreatedEvent
	err    error
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func strPtr(s string) *string { return &s }
