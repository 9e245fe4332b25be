// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key checks and participant session ids.

# Admin Keys

The admin app is guarded by a single shared key from configuration:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

Comparison is constant time. An empty configured key rejects everything.

# Session IDs

Participant session ids are random UUIDs:

	id := auth.GenerateSessionID()

Ids coming back from clients are parsed and normalized:

	id, err := auth.ParseSessionID(r.Header.Get("X-Session-ID"))

Malformed ids return ErrInvalidToken.
*/
package auth
