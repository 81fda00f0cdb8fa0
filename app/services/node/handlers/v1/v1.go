// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/pallets/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/pallets/foundation/events"
	"github.com/ardanlabs/pallets/foundation/runtime/state"
	"github.com/ardanlabs/pallets/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/state", pbl.StateInfo)
	app.Handle(http.MethodGet, version, "/balances/:account", pbl.Balance)
	app.Handle(http.MethodGet, version, "/nonces/:account", pbl.Nonce)
	app.Handle(http.MethodGet, version, "/claims/:content", pbl.Claim)
	app.Handle(http.MethodGet, version, "/blocks/list", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/:number", pbl.BlockByNumber)
	app.Handle(http.MethodGet, version, "/blocks/:number/proof/:index", pbl.Proof)
	app.Handle(http.MethodPost, version, "/blocks", pbl.SubmitBlock)
}
