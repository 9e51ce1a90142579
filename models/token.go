package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token holds a server-issued session token on the client side.
//
// SignedString is the compact JWS representation received in the
// Authorization header. UserID is a cached copy of the "sub" claim; the
// client never verifies the signature (that is the server's job), it only
// inspects claims for display and storage keying.
type Token struct {
	// SignedString is the compact serialized token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"token"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// ParseUserID extracts the user identifier from the token's "sub" claim
// without verifying the signature, caches it in UserID, and returns it.
func (t *Token) ParseUserID() (int64, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(t.SignedString, jwt.MapClaims{})
	if err != nil {
		return 0, fmt.Errorf("error parsing session token: %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting subject from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to int64: %w", err)
	}

	t.UserID = userID
	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
