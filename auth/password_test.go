package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.True(t, CheckPassword(hash, "Sup3rSecret!"))
	assert.False(t, CheckPassword(hash, "sup3rsecret!"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestPasswordIsValid(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Sup3rSecret!", true},
		{"aB3!aB3!", true},
		{"Ab1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigitsHere!", false},
		{"NoSpecials123", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valid, PasswordIsValid(c.password), c.password)
	}
}
