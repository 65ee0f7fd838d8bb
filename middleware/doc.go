// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, status and duration_ms once the handler returns. The
wrapped writer still supports hijacking so websocket upgrades work.

# Sessions

	mux.HandleFunc("POST /nominations",
		middleware.WithLogging(middleware.RequireSession(idc, h.Create)))

	s, ok := middleware.SessionFrom(r.Context())

RequireSession answers 401 without a valid "Authorization: Bearer <token>".
OptionalSession attaches the session when there is one and never rejects.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateNominationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used for the salted vote IP hash.
*/
package middleware
