// Package public maintains the group of handlers for public access.
package public

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/ardanlabs/pallets/business/sys/validate"
	"github.com/ardanlabs/pallets/business/web/errs"
	"github.com/ardanlabs/pallets/foundation/events"
	"github.com/ardanlabs/pallets/foundation/runtime"
	"github.com/ardanlabs/pallets/foundation/runtime/state"
	"github.com/ardanlabs/pallets/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	id, ch := h.Evts.Acquire()
	defer h.Evts.Release(id)

	h.Log.Infow("events", "traceid", web.GetTraceID(ctx), "subscriber", id)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// StateInfo returns the storage of every pallet.
func (h Handlers) StateInfo(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	ss := h.State.RetrieveSnapshot()
	snap := ss.State

	names := make(map[runtime.AccountID]struct{})
	for who := range snap.Balances {
		names[who] = struct{}{}
	}
	for who := range snap.Nonces {
		names[who] = struct{}{}
	}

	accounts := make([]account, 0, len(names))
	for who := range names {
		accounts = append(accounts, account{
			Account: who,
			Balance: snap.Balances[who],
			Nonce:   snap.Nonces[who],
		})
	}
	slices.SortFunc(accounts, func(a, b account) int {
		return cmp.Compare(a.Account, b.Account)
	})

	claims := make([]claim, 0, len(snap.Claims))
	for content, owner := range snap.Claims {
		claims = append(claims, claim{Content: content, Owner: owner})
	}
	slices.SortFunc(claims, func(a, b claim) int {
		return cmp.Compare(a.Content, b.Content)
	})

	si := stateInfo{
		BlockNumber: snap.BlockNumber,
		LatestBlock: ss.LatestBlock.Hash,
		StateRoot:   ss.StateRoot,
		Accounts:    accounts,
		Claims:      claims,
	}

	return web.Respond(ctx, w, si, http.StatusOK)
}

// Balance returns the balance of the specified account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	who := web.Param(r, "account")

	act := account{
		Account: who,
		Balance: h.State.QueryBalance(who),
		Nonce:   h.State.QueryNonce(who),
	}

	return web.Respond(ctx, w, act, http.StatusOK)
}

// Nonce returns the nonce of the specified account.
func (h Handlers) Nonce(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	who := web.Param(r, "account")

	resp := struct {
		Account runtime.AccountID `json:"account"`
		Nonce   runtime.Nonce     `json:"nonce"`
	}{
		Account: who,
		Nonce:   h.State.QueryNonce(who),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Claim returns the owner of the specified content.
func (h Handlers) Claim(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	content := web.Param(r, "content")

	owner, exists := h.State.QueryClaim(content)
	if !exists {
		return errs.NewTrusted(fmt.Errorf("content %q is not claimed", content), http.StatusNotFound)
	}

	return web.Respond(ctx, w, claim{Content: content, Owner: owner}, http.StatusOK)
}

// Blocks returns every executed block.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.State.QueryBlocks()
	if err != nil {
		return err
	}

	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// BlockByNumber returns the specified executed block.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 32)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block number: %w", err), http.StatusBadRequest)
	}

	block, err := h.State.QueryBlock(runtime.BlockNumber(num))
	if err != nil {
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Proof returns the merkle proof that an extrinsic is part of a block.
func (h Handlers) Proof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 32)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block number: %w", err), http.StatusBadRequest)
	}

	index, err := strconv.Atoi(web.Param(r, "index"))
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid extrinsic index: %w", err), http.StatusBadRequest)
	}

	proof, err := h.State.QueryProof(runtime.BlockNumber(num), index)
	if err != nil {
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, proof, http.StatusOK)
}

// SubmitBlock executes a block against the runtime. A rejected block is
// reported as a bad request, an executed block returns the receipts of its
// extrinsics whether they succeeded or not.
func (h Handlers) SubmitBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var bd runtime.BlockData
	if err := web.Decode(r, &bd); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(bd); err != nil {
		return err
	}

	h.Log.Infow("submit block", "traceid", web.GetTraceID(ctx), "number", bd.Header.BlockNumber, "extrinsics", len(bd.Extrinsics))

	record, err := h.State.SubmitBlock(bd)
	if err != nil {
		switch {
		case errors.Is(err, runtime.ErrInvalidBlockNumber), errors.Is(err, state.ErrMalformedBlock):
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return err
	}

	br := blockResult{
		Number:    record.Number,
		Hash:      record.Hash,
		StateRoot: record.StateRoot,
		Receipts:  record.Receipts,
	}

	return web.Respond(ctx, w, br, http.StatusOK)
}
