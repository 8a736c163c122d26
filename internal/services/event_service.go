package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/gather/internal/helpers"
	"github.com/joshua-takyi/gather/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	invalidEventID = "Invalid event ID"
	notEditable    = "Not authorized to edit this event"
)

type CreateEventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// UpdateEventInput carries a partial update. Empty fields are left unchanged.
type UpdateEventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

type EventService struct {
	events models.EventRepo
	users  models.UserRepo
	logger *slog.Logger
	now    func() time.Time
}

func NewEventService(events models.EventRepo, users models.UserRepo, logger *slog.Logger) *EventService {
	return &EventService{
		events: events,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

func (es *EventService) ListAll(ctx context.Context) ([]*models.EventView, error) {
	events, err := es.events.ListEvents(ctx, models.EventFilter{})
	if err != nil {
		return nil, err
	}
	return es.expand(ctx, events...)
}

func (es *EventService) ListMine(ctx context.Context, identity *helpers.Identity) ([]*models.EventView, error) {
	owner := identity.UserID
	events, err := es.events.ListEvents(ctx, models.EventFilter{Owner: &owner})
	if err != nil {
		return nil, err
	}
	return es.expand(ctx, events...)
}

func (es *EventService) GetByID(ctx context.Context, rawID string) (*models.EventView, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	event, err := es.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return es.expandOne(ctx, event)
}

func (es *EventService) Create(ctx context.Context, identity *helpers.Identity, in CreateEventInput) (*models.EventView, error) {
	title := helpers.SanitizeText(in.Title)
	if title == "" || helpers.StringTrim(in.Date) == "" {
		return nil, models.NewValidationError("Title and date required")
	}
	date, err := helpers.ParseEventDate(in.Date, es.now())
	if err != nil {
		return nil, models.NewValidationError("Invalid date")
	}

	event := &models.Event{
		Title:       title,
		Description: helpers.SanitizeText(in.Description),
		Date:        date,
		Location:    helpers.SanitizeText(in.Location),
		Owner:       identity.UserID,
		Attendees:   []primitive.ObjectID{},
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, models.NewValidationError("Title and date required")
	}
	if err := es.events.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	es.logger.Info("Event created", "event_id", event.ID.Hex(), "owner", identity.UserID.Hex())
	return es.expandOne(ctx, event)
}

func (es *EventService) Update(ctx context.Context, identity *helpers.Identity, rawID string, in UpdateEventInput) (*models.EventView, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	if _, err := es.ownedEvent(ctx, identity, id, notEditable); err != nil {
		return nil, err
	}
	changes, err := es.changesFrom(in)
	if err != nil {
		return nil, err
	}

	updated, err := es.events.UpdateEvent(ctx, id, identity.UserID, changes)
	if err != nil {
		return nil, err
	}
	return es.expandOne(ctx, updated)
}

// CheckEditable reports whether the caller may update the event, without
// looking at any proposed changes.
func (es *EventService) CheckEditable(ctx context.Context, identity *helpers.Identity, rawID string) error {
	id, err := parseEventID(rawID)
	if err != nil {
		return err
	}
	_, err = es.ownedEvent(ctx, identity, id, notEditable)
	return err
}

func (es *EventService) Delete(ctx context.Context, identity *helpers.Identity, rawID string) error {
	id, err := parseEventID(rawID)
	if err != nil {
		return err
	}
	if _, err := es.ownedEvent(ctx, identity, id, "Not authorized to delete this event"); err != nil {
		return err
	}
	if err := es.events.DeleteEvent(ctx, id, identity.UserID); err != nil {
		return err
	}

	es.logger.Info("Event deleted", "event_id", id.Hex(), "owner", identity.UserID.Hex())
	return nil
}

// Join adds the caller to the attendees. Joining twice is an error.
func (es *EventService) Join(ctx context.Context, identity *helpers.Identity, rawID string) (*models.EventView, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	event, err := es.events.AddAttendee(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}
	return es.expandOne(ctx, event)
}

// Leave removes the caller from the attendees. Leaving an event the caller
// never joined succeeds without changing anything.
func (es *EventService) Leave(ctx context.Context, identity *helpers.Identity, rawID string) (*models.EventView, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	event, err := es.events.RemoveAttendee(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}
	return es.expandOne(ctx, event)
}

func (es *EventService) ownedEvent(ctx context.Context, identity *helpers.Identity, id primitive.ObjectID, forbidden string) (*models.Event, error) {
	event, err := es.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.IsOwner(event.Owner) {
		return nil, models.NewForbiddenError(forbidden)
	}
	return event, nil
}

func (es *EventService) changesFrom(in UpdateEventInput) (models.EventChanges, error) {
	var changes models.EventChanges
	if title := helpers.SanitizeText(in.Title); title != "" {
		changes.Title = &title
	}
	if description := helpers.SanitizeText(in.Description); description != "" {
		changes.Description = &description
	}
	if location := helpers.SanitizeText(in.Location); location != "" {
		changes.Location = &location
	}
	if helpers.StringTrim(in.Date) != "" {
		date, err := helpers.ParseEventDate(in.Date, es.now())
		if err != nil {
			return changes, models.NewValidationError("Invalid date")
		}
		changes.Date = &date
	}
	return changes, nil
}

func (es *EventService) expandOne(ctx context.Context, event *models.Event) (*models.EventView, error) {
	views, err := es.expand(ctx, event)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// expand resolves owner and attendee references to public projections with
// a single user lookup. References to missing users are dropped.
func (es *EventService) expand(ctx context.Context, events ...*models.Event) ([]*models.EventView, error) {
	seen := make(map[primitive.ObjectID]struct{})
	ids := []primitive.ObjectID{}
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, e := range events {
		add(e.Owner)
		for _, a := range e.Attendees {
			add(a)
		}
	}

	users, err := es.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to expand event users: %w", err)
	}
	byID := make(map[primitive.ObjectID]*models.UserPublic, len(users))
	for _, u := range users {
		byID[u.ID] = u.Public()
	}

	views := make([]*models.EventView, 0, len(events))
	for _, e := range events {
		attendees := make([]*models.UserPublic, 0, len(e.Attendees))
		for _, a := range e.Attendees {
			if u, ok := byID[a]; ok {
				attendees = append(attendees, u)
			}
		}
		views = append(views, &models.EventView{
			ID:          e.ID.Hex(),
			Title:       e.Title,
			Description: e.Description,
			Date:        e.Date,
			Location:    e.Location,
			Owner:       byID[e.Owner],
			Attendees:   attendees,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return views, nil
}

func parseEventID(raw string) (primitive.ObjectID, error) {
	id, ok := helpers.ParseObjectID(raw)
	if !ok {
		return primitive.NilObjectID, models.NewValidationError(invalidEventID)
	}
	return id, nil
}
