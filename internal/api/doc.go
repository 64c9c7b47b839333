// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package api provides the HTTP REST API for the recommendation service.

Routes:

	GET /api/v1/health/live                              liveness, always 200
	GET /api/v1/health/ready                             readiness, 503 if the store is down
	GET /api/v1/recommendations/personalized             ?user_id=&limit=
	GET /api/v1/recommendations/user/{userID}            ?limit=
	GET /api/v1/recommendations/similar/{recipeID}       ?cuisine_path=&limit=
	GET /api/v1/recipes/{recipeID}                       recipe detail
	GET /metrics                                         Prometheus exposition

limit is optional and must lie in 1..MaxLimit (default 50). An omitted limit
selects 6 for personalized and 5 for similar requests.

Every JSON body uses the models.APIResponse envelope. Engine errors map to
status codes as follows:

	recommend.ErrInvalidRequest         400 VALIDATION_ERROR
	recommend.ErrNotFound               404 NOT_FOUND
	recommend.ErrDataSourceUnavailable  503 DATA_SOURCE_UNAVAILABLE
	anything else                       500 INTERNAL_ERROR

Similar and recipe detail responses are deterministic for a given catalogue
and carry an ETag; a matching If-None-Match yields 304. Personalized
responses may contain random scores and are sent with Cache-Control: no-store.

Middleware order: request id, real IP, panic recovery, CORS, gzip. The
/api/v1 data routes additionally pass through the httprate limiter and the
Prometheus request metrics.

Usage:

	handler := api.NewHandler(engine, db, api.HandlerConfig{Version: version})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	srv := &http.Server{Addr: addr, Handler: router.SetupChi()}
*/
package api
