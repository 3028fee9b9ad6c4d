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

// AlbumsClient accesses the /albums collection.
type AlbumsClient struct {
	core *Client
}

// List retrieves albums, optionally filtered by owning gallery.
func (a *AlbumsClient) List(ctx context.Context, q models.AlbumsQuery) ([]models.Album, error) {
	qs := newQueryParams().addID("galleryId", q.GalleryID).encode()
	res, err := request[[]models.Album](ctx, a.core, "/albums"+qs, requestOptions{
		resource:  "albums",
		operation: "list",
	})
	if err != nil || res == nil {
		return nil, err
	}
	return *res, nil
}

// Get fetches a single album by id.
func (a *AlbumsClient) Get(ctx context.Context, id models.ID) (*models.Album, error) {
	return request[models.Album](ctx, a.core, fmt.Sprintf("/albums/%d", id), requestOptions{
		resource:  "albums",
		operation: "get",
	})
}

// Create adds a new album to a gallery.
func (a *AlbumsClient) Create(ctx context.Context, payload models.NewAlbum) (*models.Album, error) {
	if verr := validation.ValidateStruct(&payload); verr != nil {
		return nil, verr
	}
	return request[models.Album](ctx, a.core, "/albums", requestOptions{
		method:    http.MethodPost,
		body:      payload,
		expect:    []int{http.StatusCreated},
		resource:  "albums",
		operation: "create",
	})
}

// Update partially updates an album. The owning gallery is immutable.
func (a *AlbumsClient) Update(ctx context.Context, id models.ID, payload models.UpdateAlbum) (*models.Album, error) {
	return request[models.Album](ctx, a.core, fmt.Sprintf("/albums/%d", id), requestOptions{
		method:    http.MethodPut,
		body:      payload,
		resource:  "albums",
		operation: "update",
	})
}

// Delete removes an album.
func (a *AlbumsClient) Delete(ctx context.Context, id models.ID) error {
	_, err := request[models.DeleteAck](ctx, a.core, fmt.Sprintf("/albums/%d", id), requestOptions{
		method:    http.MethodDelete,
		resource:  "albums",
		operation: "delete",
	})
	return err
}
