// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and key utilities.

# Unlock Tokens

Passing the lock screen yields an HMAC-signed token carrying its issue time:

	token := auth.GenerateUnlockToken(secret, time.Now())
	err := auth.ValidateUnlockToken(token, secret, time.Now(), auth.UnlockTTL)

Tokens need no server-side storage. They expire after UnlockTTL.

# Upload Keys

Writes (photos, notes) require the upload key. Only its SHA-256 digest is
configured:

	digest := auth.UploadKeyDigest("the key")
	err := auth.ValidateUploadKey(provided, digest)

The comparison is constant time.

# IP Hashing

Unlock attempt limits are keyed by a salted hash of the client IP:

	key := auth.HashIP(ipAddress, salt)
*/
package auth
