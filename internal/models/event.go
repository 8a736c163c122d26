package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title" validate:"required"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time            `bson:"date" json:"date" validate:"required"`
	Location    string               `bson:"location,omitempty" json:"location,omitempty"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Attendees   []primitive.ObjectID `bson:"attendees" json:"attendees"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// EventView is an event with its owner and attendees expanded to public
// user projections.
type EventView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	Location    string        `json:"location"`
	Owner       *UserPublic   `json:"owner"`
	Attendees   []*UserPublic `json:"attendees"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// EventChanges holds the fields of a partial update. Nil means unchanged.
type EventChanges struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
}

func (c EventChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Date == nil && c.Location == nil
}

func (e *Event) BeforeCreate() {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Attendees == nil {
		e.Attendees = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
}

func (e *Event) IsOwnedBy(userID primitive.ObjectID) bool {
	return e.Owner == userID
}

func (e *Event) HasAttendee(userID primitive.ObjectID) bool {
	return slices.Contains(e.Attendees, userID)
}

// Apply copies the non-nil changes onto e.
func (e *Event) Apply(c EventChanges) {
	if c.Title != nil {
		e.Title = *c.Title
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.Date != nil {
		e.Date = *c.Date
	}
	if c.Location != nil {
		e.Location = *c.Location
	}
}
