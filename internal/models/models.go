// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package models declares the data contracts shared between the backend
// access layer and its consumers.
//
// For every resource there are three shapes: the full entity as returned by
// reads, a New* payload for creation (full shape minus server-assigned
// fields), and an Update* payload for partial update (creation shape with
// every field optional; absent fields mean "leave unchanged").
//
// The contracts are purely structural. Nothing here validates responses at
// runtime; the backend is trusted to return what it declares. Request
// payloads carry validate tags that the access layer checks before sending.
package models

import "time"

// ID is an opaque numeric surrogate key, assigned by the backend at creation.
type ID int64

// Mode values for EventsQuery.
const (
	ModePast     = "past"
	ModeUpcoming = "upcoming"
)

// Event is a single scheduled event. "Past" vs "upcoming" is derived by
// comparing Date to the current time, never stored.
type Event struct {
	ID              ID        `json:"id"`
	Title           string    `json:"title"`
	Venue           *string   `json:"venue"`
	Location        *string   `json:"location"`
	Date            time.Time `json:"date"`
	Description     *string   `json:"description"`
	FeaturedImage   *string   `json:"featured_image"`
	TicketAvailable bool      `json:"ticket_available"`
}

// NewEvent is the payload accepted for event creation.
type NewEvent struct {
	Title           string    `json:"title" validate:"required"`
	Venue           *string   `json:"venue"`
	Location        *string   `json:"location"`
	Date            time.Time `json:"date" validate:"required"`
	Description     *string   `json:"description"`
	FeaturedImage   *string   `json:"featured_image"`
	TicketAvailable bool      `json:"ticket_available"`
}

// UpdateEvent is the payload for partial event update. Absent fields are not
// serialized and leave the backend value unchanged.
type UpdateEvent struct {
	Title           *string    `json:"title,omitempty"`
	Venue           *string    `json:"venue,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Description     *string    `json:"description,omitempty"`
	FeaturedImage   *string    `json:"featured_image,omitempty"`
	TicketAvailable *bool      `json:"ticket_available,omitempty"`
}

// Gallery groups albums under an event. One event may have zero or more.
type Gallery struct {
	ID        ID         `json:"id"`
	EventID   ID         `json:"event_id"`
	Title     string     `json:"title"`
	Title2    string     `json:"title2,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewGallery is the payload accepted for gallery creation.
type NewGallery struct {
	EventID ID     `json:"event_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Title2  string `json:"title2,omitempty"`
}

// UpdateGallery is the payload for partial gallery update.
type UpdateGallery struct {
	EventID *ID     `json:"event_id,omitempty"`
	Title   *string `json:"title,omitempty"`
	Title2  *string `json:"title2,omitempty"`
}

// Album is exactly one image inside a gallery.
type Album struct {
	ID        ID     `json:"id"`
	GalleryID ID     `json:"gallery_id"`
	ImageURL  string `json:"image_url"`
}

// NewAlbum is the payload accepted for album creation.
type NewAlbum struct {
	GalleryID ID     `json:"gallery_id" validate:"required"`
	ImageURL  string `json:"image_url" validate:"required,url"`
}

// UpdateAlbum is the payload for partial album update. The parent gallery is
// immutable once created.
type UpdateAlbum struct {
	ImageURL *string `json:"image_url,omitempty"`
}

// Ticket is a purchase of one or more seats for an event. PurchasedDate is
// set by the backend at creation, never client-supplied.
type Ticket struct {
	ID            ID        `json:"id"`
	EventID       ID        `json:"event_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Quantity      int       `json:"quantity"`
	TicketType    string    `json:"ticket_type"`
	PurchasedDate time.Time `json:"purchased_date"`
}

// NewTicket is the payload accepted for ticket creation.
type NewTicket struct {
	EventID    ID     `json:"event_id" validate:"required"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
	TicketType string `json:"ticket_type" validate:"required"`
}

// UpdateTicket is the payload for partial ticket update. The parent event is
// immutable once created.
type UpdateTicket struct {
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	Quantity   *int    `json:"quantity,omitempty"`
	TicketType *string `json:"ticket_type,omitempty"`
}

// ConnectEntry is a contact-form submission.
type ConnectEntry struct {
	ID        ID        `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	Country   *string   `json:"country,omitempty"`
	City      *string   `json:"city,omitempty"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConnectEntry is the payload accepted for contact-form submission.
type NewConnectEntry struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Contact  string  `json:"contact" validate:"required"`
	Country  *string `json:"country,omitempty"`
	City     *string `json:"city,omitempty"`
	Comment  *string `json:"comment,omitempty"`
}

// DeleteAck is the acknowledgement the backend returns for deletions.
type DeleteAck struct {
	Success bool `json:"success"`
}

// TicketEnvelope is the wrapper ticket creation returns instead of the bare
// entity. Every other create endpoint returns the entity directly; the
// drift is preserved here because the backend contract is not being
// redesigned.
type TicketEnvelope struct {
	Success bool   `json:"success"`
	Ticket  Ticket `json:"ticket"`
}

// EventsQuery filters event listings. Mode is "past" or "upcoming"; empty
// means no mode filter. Cancellation travels on the call's context.
type EventsQuery struct {
	Mode string `validate:"omitempty,oneof=past upcoming"`
}

// GalleriesQuery filters gallery listings by parent event. Zero means no
// filter.
type GalleriesQuery struct {
	EventID ID
}

// AlbumsQuery filters album listings by parent gallery. Zero means no filter.
type AlbumsQuery struct {
	GalleryID ID
}

// TicketsQuery filters ticket listings by parent event. Zero means no filter.
type TicketsQuery struct {
	EventID ID
}
