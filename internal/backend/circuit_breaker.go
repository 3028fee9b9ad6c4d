// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stagepass/stagepass/internal/logging"
	"github.com/stagepass/stagepass/internal/metrics"
	"github.com/stagepass/stagepass/internal/models"
)

// CircuitBreakerClient wraps Client with the circuit breaker pattern so
// a slow or dead backend stops consuming gateway resources.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations. Tests that need deterministic behavior should
// exercise the wrapped client directly.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient builds a backend client guarded by a circuit
// breaker:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(client *Client) *CircuitBreakerClient {
	cbName := "stagepass-backend"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		// Aborted requests are caller decisions, not backend failures,
		// and must not push the breaker toward open.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrAborted)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a backend call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()

	return result, nil
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ping verifies backend connectivity with circuit breaker protection.
func (cbc *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Ping(ctx)
	})
	return err
}

// ListEvents retrieves events with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListEvents(ctx context.Context, q models.EventsQuery) ([]models.Event, error) {
	res, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Events.List(ctx, q)
	})
	if err != nil || res == nil {
		return nil, err
	}
	events, ok := res.([]models.Event)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return events, nil
}

// GetEvent retrieves a single event with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetEvent(ctx context.Context, id models.ID) (*models.Event, error) {
	return castResult[models.Event](cbc.execute(func() (interface{}, error) {
		return cbc.client.Events.Get(ctx, id)
	}))
}

// CreateEvent creates an event with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateEvent(ctx context.Context, payload models.NewEvent) (*models.Event, error) {
	return castResult[models.Event](cbc.execute(func() (interface{}, error) {
		return cbc.client.Events.Create(ctx, payload)
	}))
}

// UpdateEvent updates an event with circuit breaker protection.
func (cbc *CircuitBreakerClient) UpdateEvent(ctx context.Context, id models.ID, payload models.UpdateEvent) (*models.Event, error) {
	return castResult[models.Event](cbc.execute(func() (interface{}, error) {
		return cbc.client.Events.Update(ctx, id, payload)
	}))
}

// DeleteEvent deletes an event with circuit breaker protection.
func (cbc *CircuitBreakerClient) DeleteEvent(ctx context.Context, id models.ID) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Events.Delete(ctx, id)
	})
	return err
}

// ListGalleries retrieves galleries with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListGalleries(ctx context.Context, q models.GalleriesQuery) ([]models.Gallery, error) {
	res, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Galleries.List(ctx, q)
	})
	if err != nil || res == nil {
		return nil, err
	}
	galleries, ok := res.([]models.Gallery)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return galleries, nil
}

// GetGallery retrieves a gallery with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetGallery(ctx context.Context, id models.ID) (*models.Gallery, error) {
	return castResult[models.Gallery](cbc.execute(func() (interface{}, error) {
		return cbc.client.Galleries.Get(ctx, id)
	}))
}

// CreateGallery creates a gallery with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateGallery(ctx context.Context, payload models.NewGallery) (*models.Gallery, error) {
	return castResult[models.Gallery](cbc.execute(func() (interface{}, error) {
		return cbc.client.Galleries.Create(ctx, payload)
	}))
}

// UpdateGallery updates a gallery with circuit breaker protection.
func (cbc *CircuitBreakerClient) UpdateGallery(ctx context.Context, id models.ID, payload models.UpdateGallery) (*models.Gallery, error) {
	return castResult[models.Gallery](cbc.execute(func() (interface{}, error) {
		return cbc.client.Galleries.Update(ctx, id, payload)
	}))
}

// DeleteGallery deletes a gallery with circuit breaker protection.
func (cbc *CircuitBreakerClient) DeleteGallery(ctx context.Context, id models.ID) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Galleries.Delete(ctx, id)
	})
	return err
}

// ListAlbums retrieves albums with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListAlbums(ctx context.Context, q models.AlbumsQuery) ([]models.Album, error) {
	res, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Albums.List(ctx, q)
	})
	if err != nil || res == nil {
		return nil, err
	}
	albums, ok := res.([]models.Album)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return albums, nil
}

// GetAlbum retrieves an album with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetAlbum(ctx context.Context, id models.ID) (*models.Album, error) {
	return castResult[models.Album](cbc.execute(func() (interface{}, error) {
		return cbc.client.Albums.Get(ctx, id)
	}))
}

// CreateAlbum creates an album with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateAlbum(ctx context.Context, payload models.NewAlbum) (*models.Album, error) {
	return castResult[models.Album](cbc.execute(func() (interface{}, error) {
		return cbc.client.Albums.Create(ctx, payload)
	}))
}

// UpdateAlbum updates an album with circuit breaker protection.
func (cbc *CircuitBreakerClient) UpdateAlbum(ctx context.Context, id models.ID, payload models.UpdateAlbum) (*models.Album, error) {
	return castResult[models.Album](cbc.execute(func() (interface{}, error) {
		return cbc.client.Albums.Update(ctx, id, payload)
	}))
}

// DeleteAlbum deletes an album with circuit breaker protection.
func (cbc *CircuitBreakerClient) DeleteAlbum(ctx context.Context, id models.ID) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Albums.Delete(ctx, id)
	})
	return err
}

// ListTickets retrieves tickets with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListTickets(ctx context.Context, q models.TicketsQuery) ([]models.Ticket, error) {
	res, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Tickets.List(ctx, q)
	})
	if err != nil || res == nil {
		return nil, err
	}
	tickets, ok := res.([]models.Ticket)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return tickets, nil
}

// GetTicket retrieves a ticket with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetTicket(ctx context.Context, id models.ID) (*models.Ticket, error) {
	return castResult[models.Ticket](cbc.execute(func() (interface{}, error) {
		return cbc.client.Tickets.Get(ctx, id)
	}))
}

// CreateTicket creates a ticket with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateTicket(ctx context.Context, payload models.NewTicket) (*models.Ticket, error) {
	return castResult[models.Ticket](cbc.execute(func() (interface{}, error) {
		return cbc.client.Tickets.Create(ctx, payload)
	}))
}

// UpdateTicket updates a ticket with circuit breaker protection.
func (cbc *CircuitBreakerClient) UpdateTicket(ctx context.Context, id models.ID, payload models.UpdateTicket) (*models.Ticket, error) {
	return castResult[models.Ticket](cbc.execute(func() (interface{}, error) {
		return cbc.client.Tickets.Update(ctx, id, payload)
	}))
}

// DeleteTicket deletes a ticket with circuit breaker protection.
func (cbc *CircuitBreakerClient) DeleteTicket(ctx context.Context, id models.ID) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Tickets.Delete(ctx, id)
	})
	return err
}

// ListConnect retrieves contact submissions with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListConnect(ctx context.Context) ([]models.ConnectEntry, error) {
	res, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Connect.List(ctx)
	})
	if err != nil || res == nil {
		return nil, err
	}
	entries, ok := res.([]models.ConnectEntry)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return entries, nil
}

// CreateConnect records a contact submission with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateConnect(ctx context.Context, payload models.NewConnectEntry) (*models.ConnectEntry, error) {
	return castResult[models.ConnectEntry](cbc.execute(func() (interface{}, error) {
		return cbc.client.Connect.Create(ctx, payload)
	}))
}

// DeleteConnect removes a contact submission with circuit breaker protection.
func (cbc *CircuitBreakerClient) DeleteConnect(ctx context.Context, id models.ID) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Connect.Delete(ctx, id)
	})
	return err
}

// ReportSummary retrieves sales aggregates with circuit breaker protection.
func (cbc *CircuitBreakerClient) ReportSummary(ctx context.Context, q models.ReportsQuery) (*models.ReportSummary, error) {
	return castResult[models.ReportSummary](cbc.execute(func() (interface{}, error) {
		return cbc.client.Reports.Summary(ctx, q)
	}))
}
