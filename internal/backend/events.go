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

// EventsClient accesses the /events collection.
type EventsClient struct {
	core *Client
}

// List retrieves events, optionally filtered by mode ("past"/"upcoming").
// The mode filter is applied by the backend; results come back in
// backend-defined order and this layer applies no date filtering of its own.
func (e *EventsClient) List(ctx context.Context, q models.EventsQuery) ([]models.Event, error) {
	if verr := validation.ValidateStruct(&q); verr != nil {
		return nil, verr
	}
	qs := newQueryParams().addString("mode", q.Mode).encode()
	res, err := request[[]models.Event](ctx, e.core, "/events"+qs, requestOptions{
		resource:  "events",
		operation: "list",
	})
	if err != nil || res == nil {
		return nil, err
	}
	return *res, nil
}

// Get fetches a single event by id.
func (e *EventsClient) Get(ctx context.Context, id models.ID) (*models.Event, error) {
	return request[models.Event](ctx, e.core, fmt.Sprintf("/events/%d", id), requestOptions{
		resource:  "events",
		operation: "get",
	})
}

// Create adds a new event. The backend assigns the id and returns the
// created entity.
func (e *EventsClient) Create(ctx context.Context, payload models.NewEvent) (*models.Event, error) {
	if verr := validation.ValidateStruct(&payload); verr != nil {
		return nil, verr
	}
	return request[models.Event](ctx, e.core, "/events", requestOptions{
		method:    http.MethodPost,
		body:      payload,
		expect:    []int{http.StatusCreated},
		resource:  "events",
		operation: "create",
	})
}

// Update partially updates an event; absent fields are left unchanged.
func (e *EventsClient) Update(ctx context.Context, id models.ID, payload models.UpdateEvent) (*models.Event, error) {
	return request[models.Event](ctx, e.core, fmt.Sprintf("/events/%d", id), requestOptions{
		method:    http.MethodPut,
		body:      payload,
		resource:  "events",
		operation: "update",
	})
}

// Delete removes an event.
func (e *EventsClient) Delete(ctx context.Context, id models.ID) error {
	_, err := request[models.DeleteAck](ctx, e.core, fmt.Sprintf("/events/%d", id), requestOptions{
		method:    http.MethodDelete,
		resource:  "events",
		operation: "delete",
	})
	return err
}
