// Package secrets implements the cryptographic envelope for eenv.
//
// # Envelope Architecture
//
// The whole set of discovered secret files is serialized to one canonical
// JSON document and sealed in a single authenticated-encryption pass:
//
//  1. The stored key string is interpreted by an ordered strategy chain
//     (URL-safe base64, standard base64, BLAKE2b-256 of the raw text);
//     the first interpretation that yields bytes wins, and any result
//     that is not exactly 32 bytes is hashed down to 32. The same
//     normalization applies on encryption and decryption.
//  2. A fresh random 96-bit nonce is drawn for every encryption; nonces
//     are never reused under a key.
//  3. AES-256-GCM (default) or ChaCha20-Poly1305 seals the document; the
//     algorithm identifier, nonce, tag, and ciphertext are stored as
//     unpadded URL-safe base64 in a JSON envelope.
//
// Decryption fails closed: any tag mismatch returns
// ErrDecryptionAuthFailed and no data. Losing the key string makes the
// artifact permanently unrecoverable — there is no secondary escrow.
//
// The package also materializes decrypted maps back to disk without
// clobbering existing files unless forced.
package secrets
