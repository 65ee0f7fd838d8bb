// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides signing and token generation utilities.

# Identity Assertions

The identity provider vouches for a signed-in user by signing the user's id
with a shared secret (HMAC-SHA256, URL-safe base64 without padding):

	sig := auth.SignAssertion(uid, secret)
	err := auth.ValidateAssertion(uid, sig, secret)

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Clients send them back as a bearer token:

	token, err := auth.ParseBearer(r.Header.Get("Authorization"))

# IP Hashing

Votes record a salted hash of the voter's IP, never the IP itself:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
