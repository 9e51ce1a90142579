package models

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestToken_ParseUserID(t *testing.T) {
	token := Token{SignedString: signedToken(t, jwt.MapClaims{"sub": "42"})}

	userID, err := token.ParseUserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
	assert.EqualValues(t, 42, token.UserID)
}

func TestToken_ParseUserID_NonNumericSubject(t *testing.T) {
	token := Token{SignedString: signedToken(t, jwt.MapClaims{"sub": "alice"})}

	_, err := token.ParseUserID()
	assert.Error(t, err)
}

func TestToken_ParseUserID_Garbage(t *testing.T) {
	token := Token{SignedString: "not.a.jwt"}

	_, err := token.ParseUserID()
	assert.Error(t, err)
}

func TestToken_String(t *testing.T) {
	token := Token{SignedString: "abc.def.ghi"}
	assert.Equal(t, "abc.def.ghi", token.String())
}
