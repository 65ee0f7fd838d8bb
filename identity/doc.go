// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity signs users in and out.

The identity provider hands the client a profile plus a signature,
base64url(HMAC-SHA256(uid, IDENTITY_SECRET)). A valid assertion opens an
in-memory session keyed by an opaque bearer token:

	c := identity.New(cfg.IdentitySecret, cfg.SessionTTL, users.New(store))
	go c.RunJanitor(ctx, time.Minute)

	s, err := c.SignIn(ctx, assertion)
	s, ok := c.Lookup(token)
	err = c.SignOut(ctx, token)

Every successful sign-in writes the profile through the ProfileWriter. If
that write fails the error is logged and the session is still created.
Sessions do not survive a restart.
*/
package identity
