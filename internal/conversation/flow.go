// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/jedai-tui/internal/explainer"
	"github.com/jeranaias/jedai-tui/internal/model"
)

// FallbackText replaces the answer of any failed request.
const FallbackText = "Something went wrong. Try again!"

// ErrEmptyQuery is returned by Submit for a query that is empty or only
// whitespace.
var ErrEmptyQuery = errors.New("empty query")

// Explainer answers a query. *explainer.Client satisfies it.
type Explainer interface {
	Explain(ctx context.Context, query string) (explainer.Answer, error)
}

// =============================================================================
// REQUEST / OUTCOME
// =============================================================================

// Request is a submitted query awaiting its remote call.
type Request struct {
	ID          string
	Query       string
	SubmittedAt time.Time
}

// Outcome is the result of a remote call for one Request.
type Outcome struct {
	RequestID string
	Answer    explainer.Answer
	Err       error
	Duration  time.Duration
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// =============================================================================
// FLOW
// =============================================================================

// Flow drives queries through the store.
type Flow struct {
	store     *Store
	explainer Explainer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewFlow creates a flow that records into store and asks exp.
func NewFlow(store *Store, exp Explainer) *Flow {
	return &Flow{
		store:     store,
		explainer: exp,
		logger:    zerolog.Nop(),
		now:       time.Now,
	}
}

// WithLogger sets the logger for failed requests.
func (f *Flow) WithLogger(logger zerolog.Logger) *Flow {
	f.logger = logger
	return f
}

// Store returns the store the flow writes to.
func (f *Flow) Store() *Store {
	return f.store
}

// Submit records query as a user message and turns loading on. A blank
// query returns ErrEmptyQuery and leaves the store untouched. The query is
// kept verbatim; trimming is only used for the blank check.
func (f *Flow) Submit(query string) (*Request, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	f.store.append(model.NewUserMessage(query))
	f.store.setLoading(true)

	req := &Request{
		ID:          uuid.New().String(),
		Query:       query,
		SubmittedAt: f.now(),
	}
	f.logger.Debug().
		Str("request_id", req.ID).
		Int("query_len", len(query)).
		Msg("query submitted")
	return req, nil
}

// Do performs the remote call for req. It never touches the store, so it is
// safe to call from any goroutine. A panicking explainer is reported as a
// failed outcome.
func (f *Flow) Do(ctx context.Context, req *Request) (out Outcome) {
	start := f.now()
	out.RequestID = req.ID

	defer func() {
		if r := recover(); r != nil {
			out.Answer = explainer.Answer{}
			out.Err = fmt.Errorf("explainer panicked: %v", r)
		}
		out.Duration = f.now().Sub(start)
	}()

	out.Answer, out.Err = f.explainer.Explain(ctx, req.Query)
	return out
}

// Resolve records the answer of out, or the fallback message if the call
// failed, and turns loading off. It returns the appended message.
func (f *Flow) Resolve(out Outcome) model.Message {
	defer f.store.setLoading(false)

	if out.Err != nil {
		f.logger.Warn().
			Str("request_id", out.RequestID).
			Str("kind", explainer.Classify(out.Err).String()).
			Dur("duration", out.Duration).
			Err(out.Err).
			Msg("explain request failed")

		msg := model.NewFallbackMessage(FallbackText)
		f.store.append(msg)
		return msg
	}

	f.logger.Debug().
		Str("request_id", out.RequestID).
		Dur("duration", out.Duration).
		Int("explanation_len", len(out.Answer.Explanation)).
		Msg("explain request succeeded")

	msg := model.NewBotMessage(out.Answer.Explanation, out.Answer.Reference)
	f.store.append(msg)
	return msg
}

// Send submits query, waits for the answer and records it. A blank query
// returns ErrEmptyQuery; any other failure is reported only through the
// returned fallback message.
func (f *Flow) Send(ctx context.Context, query string) (model.Message, error) {
	req, err := f.Submit(query)
	if err != nil {
		return model.Message{}, err
	}
	return f.Resolve(f.Do(ctx, req)), nil
}
