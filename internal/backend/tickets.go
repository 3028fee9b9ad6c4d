// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stagepass/stagepass/internal/models"
	"github.com/stagepass/stagepass/internal/validation"
)

// TicketsClient accesses the /tickets collection.
type TicketsClient struct {
	core *Client
}

// List retrieves tickets, optionally filtered by event.
func (t *TicketsClient) List(ctx context.Context, q models.TicketsQuery) ([]models.Ticket, error) {
	qs := newQueryParams().addID("eventId", q.EventID).encode()
	res, err := request[[]models.Ticket](ctx, t.core, "/tickets"+qs, requestOptions{
		resource:  "tickets",
		operation: "list",
	})
	if err != nil || res == nil {
		return nil, err
	}
	return *res, nil
}

// Get fetches a single ticket by id.
func (t *TicketsClient) Get(ctx context.Context, id models.ID) (*models.Ticket, error) {
	return request[models.Ticket](ctx, t.core, fmt.Sprintf("/tickets/%d", id), requestOptions{
		resource:  "tickets",
		operation: "get",
	})
}

// Create records a ticket purchase. The backend wraps the created ticket
// in a {success, ticket} envelope; callers get the unwrapped ticket.
func (t *TicketsClient) Create(ctx context.Context, payload models.NewTicket) (*models.Ticket, error) {
	if verr := validation.ValidateStruct(&payload); verr != nil {
		return nil, verr
	}
	env, err := request[models.TicketEnvelope](ctx, t.core, "/tickets", requestOptions{
		method:    http.MethodPost,
		body:      payload,
		expect:    []int{http.StatusCreated},
		resource:  "tickets",
		operation: "create",
	})
	if err != nil || env == nil {
		return nil, err
	}
	return &env.Ticket, nil
}

// Update partially updates a ticket. The event reference is immutable.
func (t *TicketsClient) Update(ctx context.Context, id models.ID, payload models.UpdateTicket) (*models.Ticket, error) {
	return request[models.Ticket](ctx, t.core, fmt.Sprintf("/tickets/%d", id), requestOptions{
		method:    http.MethodPut,
		body:      payload,
		resource:  "tickets",
		operation: "update",
	})
}

// Delete removes a ticket.
func (t *TicketsClient) Delete(ctx context.Context, id models.ID) error {
	_, err := request[models.DeleteAck](ctx, t.core, fmt.Sprintf("/tickets/%d", id), requestOptions{
		method:    http.MethodDelete,
		resource:  "tickets",
		operation: "delete",
	})
	return err
}
