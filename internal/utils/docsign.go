package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// docSigLength is the number of hex characters kept from the MAC.
const docSigLength = 32

// SignDocument returns the signature that authorizes access to the
// confirmation document of one booking.
func SignDocument(secret, collection, id string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(collection + "/" + id))
	return hex.EncodeToString(m.Sum(nil))[:docSigLength]
}

// VerifyDocument checks sig in constant time.
func VerifyDocument(secret, collection, id, sig string) bool {
	want := SignDocument(secret, collection, id)
	return hmac.Equal([]byte(want), []byte(sig))
}
