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

// ConnectClient accesses the /connect contact-submission collection.
// Submissions are append-and-purge only; there is no read-single or
// update operation on the backend.
type ConnectClient struct {
	core *Client
}

// List retrieves all contact submissions.
func (c *ConnectClient) List(ctx context.Context) ([]models.ConnectEntry, error) {
	res, err := request[[]models.ConnectEntry](ctx, c.core, "/connect", requestOptions{
		resource:  "connect",
		operation: "list",
	})
	if err != nil || res == nil {
		return nil, err
	}
	return *res, nil
}

// Create records a contact submission.
func (c *ConnectClient) Create(ctx context.Context, payload models.NewConnectEntry) (*models.ConnectEntry, error) {
	if verr := validation.ValidateStruct(&payload); verr != nil {
		return nil, verr
	}
	return request[models.ConnectEntry](ctx, c.core, "/connect", requestOptions{
		method:    http.MethodPost,
		body:      payload,
		expect:    []int{http.StatusCreated},
		resource:  "connect",
		operation: "create",
	})
}

// Delete removes a contact submission after it has been handled.
func (c *ConnectClient) Delete(ctx context.Context, id models.ID) error {
	_, err := request[models.DeleteAck](ctx, c.core, fmt.Sprintf("/connect/%d", id), requestOptions{
		method:    http.MethodDelete,
		resource:  "connect",
		operation: "delete",
	})
	return err
}
