// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vault checks lock-screen answers against stored digests.

# Building a Vault

From plaintext references (hashed immediately, plaintext is dropped):

	v, err := vault.New(map[string]string{
		"date":  "6/22/22",
		"color": "Purple",
		"place": "Penn Station",
	}, vault.RejectBlank)

From an answers file, which may hold plaintext answers, digests, or both:

	v, err := vault.LoadFile("answers.yaml", vault.RejectBlank)

	# answers.yaml
	digests:
	  color: [ "b2b8d4..." ]

MarshalDigests turns a loaded vault into a digests-only file.

# Normalisation

Answers are trimmed. Every key except "date" is also lower-cased. The date
reference expands to several spellings of the same day (raw, '-' → '/',
YYYY-MM-DD, MM/DD/YY, MM/DD/YYYY); a submitted date is only trimmed and must
match one of them exactly.

# Verification

	ok := v.Verify(map[string]string{"date": "06/22/22", "color": " purple "})

Every question in the vault must match. Missing candidates are treated as
empty strings. Verify has no side effects and keeps no attempt count.

# Blank References

An absent reference is an error under RejectBlank. Under AcceptBlank the
question accepts the digest of the empty string, so a blank answer passes.

Digests are SHA-256. They obscure the answers in config but are not a
security boundary: short answers are trivially brute-forced.
*/
package vault
