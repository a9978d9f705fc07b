// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the vault's cryptographic envelope: the
// durable root key-file (C1) and the AES-256-GCM seal/open primitives that
// use it (C3).
//
// # Key hierarchy
//
// A [KeyFile] holds three pieces of material: the high-entropy unseal key
// presented by operators to lift the seal, the 256-bit data-encryption key
// (DEK) used to encrypt every stored secret, and a monotonically
// increasing nonce counter. The DEK never leaves this package in plaintext;
// callers obtain ciphertext and a nonce-counter value from [Envelope.Seal]
// and plaintext from [Envelope.Open].
//
// # Nonce derivation
//
// Nonces are not random: each is the big-endian encoding of the current
// counter value, right-justified into a 12-byte buffer (the leading 4
// bytes are always zero). This makes nonce uniqueness a property of
// counter monotonicity rather than chance, which is safe for AES-GCM under
// a single active DEK and is mandatory once a DEK has sealed more than a
// few billion messages.
package crypto
