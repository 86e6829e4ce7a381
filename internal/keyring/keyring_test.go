package keyring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	gokeyring.MockInit()

	require.NoError(t, SetToken("secret_abc"))

	got, err := GetToken()
	require.NoError(t, err)
	assert.Equal(t, "secret_abc", got)
}

func TestSetToken_Empty(t *testing.T) {
	gokeyring.MockInit()

	assert.Error(t, SetToken(""))
}

func TestGetToken_NotFound(t *testing.T) {
	gokeyring.MockInit()

	_, err := GetToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()

	require.NoError(t, SetToken("secret_abc"))
	require.NoError(t, DeleteToken())

	_, err := GetToken()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, DeleteToken(), ErrNotFound)
}

func TestKeyringFailure(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))

	_, err := GetToken()
	assert.ErrorIs(t, err, ErrKeyringUnavailable)
	assert.False(t, IsAvailable())
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	assert.True(t, IsAvailable())
}
