package app

import (
	"context"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/domain"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ListEvents(ctx context.Context, offset, limit int) ([]domain.Event, error)
	CountEvents(ctx context.Context) (int, error)
	FindActiveEvent(ctx context.Context, now time.Time) (*domain.Event, error)
}

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{repo: repo, clock: clk}
}

type CreateEventInput struct {
	Name            string
	StartAt         time.Time
	EndAt           time.Time
	AnnounceStartAt time.Time
	AnnounceEndAt   time.Time
}

// EventWithPhase pairs an event with its phase at lookup time.
type EventWithPhase struct {
	Event domain.Event
	Phase domain.Phase
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (EventWithPhase, error) {
	if in.Name == "" {
		return EventWithPhase{}, domain.ErrEventNameRequired
	}

	now := s.clock.Now()
	event := domain.Event{
		ID:              newID(),
		Name:            in.Name,
		StartAt:         in.StartAt,
		EndAt:           in.EndAt,
		AnnounceStartAt: in.AnnounceStartAt,
		AnnounceEndAt:   in.AnnounceEndAt,
		CreatedAt:       now,
	}
	if err := event.ValidateWindows(); err != nil {
		return EventWithPhase{}, err
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return EventWithPhase{}, err
	}
	return EventWithPhase{Event: event, Phase: event.PhaseAt(now)}, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (EventWithPhase, error) {
	if eventID == "" {
		return EventWithPhase{}, domain.ErrInvalidID
	}
	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return EventWithPhase{}, err
	}
	return EventWithPhase{Event: event, Phase: event.PhaseAt(s.clock.Now())}, nil
}

type EventPage struct {
	Events     []EventWithPhase
	Page       int
	Size       int
	Total      int
	TotalPages int
}

func (s *EventService) ListEvents(ctx context.Context, page, size int) (EventPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}

	events, err := s.repo.ListEvents(ctx, (page-1)*size, size)
	if err != nil {
		return EventPage{}, err
	}
	total, err := s.repo.CountEvents(ctx)
	if err != nil {
		return EventPage{}, err
	}

	now := s.clock.Now()
	withPhase := make([]EventWithPhase, 0, len(events))
	for _, e := range events {
		withPhase = append(withPhase, EventWithPhase{Event: e, Phase: e.PhaseAt(now)})
	}

	totalPages := (total + size - 1) / size
	return EventPage{
		Events:     withPhase,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetActiveEvent returns the event currently accepting participation, or nil
// when none is active.
func (s *EventService) GetActiveEvent(ctx context.Context) (*EventWithPhase, error) {
	event, err := s.repo.FindActiveEvent(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	return &EventWithPhase{Event: *event, Phase: domain.PhaseActive}, nil
}
