// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stagepass/stagepass/internal/models"
	"github.com/stagepass/stagepass/internal/validation"
)

// GalleriesClient accesses the /galleries collection.
//
// Gallery operations carry their own request timeout and report failures
// with fixed operation-level messages instead of forwarding backend error
// detail. Admin tooling matches on these strings, so they are stable.
type GalleriesClient struct {
	core    *Client
	timeout time.Duration
}

// List retrieves galleries, optionally filtered by owning event.
func (g *GalleriesClient) List(ctx context.Context, q models.GalleriesQuery) ([]models.Gallery, error) {
	qs := newQueryParams().addID("eventId", q.EventID).encode()
	res, err := request[[]models.Gallery](ctx, g.core, "/galleries"+qs, requestOptions{
		timeout:   g.timeout,
		fallback:  "Failed to load galleries",
		resource:  "galleries",
		operation: "list",
	})
	if err != nil || res == nil {
		return nil, err
	}
	return *res, nil
}

// Get fetches a single gallery by id.
func (g *GalleriesClient) Get(ctx context.Context, id models.ID) (*models.Gallery, error) {
	return request[models.Gallery](ctx, g.core, fmt.Sprintf("/galleries/%d", id), requestOptions{
		timeout:   g.timeout,
		fallback:  "Failed to load gallery",
		resource:  "galleries",
		operation: "get",
	})
}

// Create adds a new gallery.
func (g *GalleriesClient) Create(ctx context.Context, payload models.NewGallery) (*models.Gallery, error) {
	if verr := validation.ValidateStruct(&payload); verr != nil {
		return nil, verr
	}
	return request[models.Gallery](ctx, g.core, "/galleries", requestOptions{
		method:    http.MethodPost,
		body:      payload,
		timeout:   g.timeout,
		fallback:  "Failed to create gallery",
		resource:  "galleries",
		operation: "create",
	})
}

// Update partially updates a gallery.
func (g *GalleriesClient) Update(ctx context.Context, id models.ID, payload models.UpdateGallery) (*models.Gallery, error) {
	return request[models.Gallery](ctx, g.core, fmt.Sprintf("/galleries/%d", id), requestOptions{
		method:    http.MethodPut,
		body:      payload,
		timeout:   g.timeout,
		fallback:  "Failed to update gallery",
		resource:  "galleries",
		operation: "update",
	})
}

// Delete removes a gallery. All non-success statuses, including 404,
// surface as "Failed to delete gallery".
func (g *GalleriesClient) Delete(ctx context.Context, id models.ID) error {
	_, err := request[models.DeleteAck](ctx, g.core, fmt.Sprintf("/galleries/%d", id), requestOptions{
		method:    http.MethodDelete,
		timeout:   g.timeout,
		fallback:  "Failed to delete gallery",
		resource:  "galleries",
		operation: "delete",
	})
	return err
}
