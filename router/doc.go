// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the keepsake API.

# Route Registration

NewRouter creates a configured http.ServeMux from the config and the wired
services:

	mux := router.NewRouter(cfg, router.Deps{
		Vault:     v,
		Carousels: carousels,
		Gallery:   g,
		Queue:     q,
		State:     state,
	})

# Endpoints

Public:

	GET  /health
	POST /unlock            - Check answers, returns an unlock token
	GET  /countdown         - Time until next Feb 14
	POST /visits            - Count a visit
	GET  /visits            - Read the counter
	GET  /panel-position    - Saved music panel position
	PUT  /panel-position

Carousel (requires X-Unlock-Token; each token gets its own session):

	GET    /carousel
	POST   /carousel/next, /carousel/prev, /carousel/goto
	POST   /carousel/swipe, /carousel/hover
	DELETE /carousel        - End the session

Gallery (reads require X-Unlock-Token, writes require X-Upload-Key):

	GET /photos, POST /photos, DELETE /photos/{id}
	GET /notes,  POST /notes,  DELETE /notes/{id}

Music queue (requires X-Unlock-Token):

	GET /queue, POST /queue, DELETE /queue, DELETE /queue/{index}
	POST /queue/next, /queue/prev, /queue/play/{index}, /queue/stop

When Deps.Uploads is set, local blob files are served under /uploads/.
Staging files are not reachable there.
When Deps.Limiter is set, POST /unlock is throttled per client.
*/
package router
