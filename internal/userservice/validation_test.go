package userservice

import (
	"testing"

	"github.com/quillfeed/quillfeed/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "valid email", email: "alice@example.com", valid: true},
		{name: "empty email", email: "", valid: false},
		{name: "missing domain", email: "alice@", valid: false},
		{name: "missing tld", email: "alice@example", valid: false},
		{name: "plus address", email: "alice+tag@example.com", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name        string
		displayName string
		valid       bool
	}{
		{name: "valid name", displayName: "Alice", valid: true},
		{name: "empty name", displayName: "", valid: false},
		{name: "whitespace only", displayName: "   ", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateName(v, tc.displayName)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "valid password", password: "Password1", valid: true},
		{name: "empty password", password: "", valid: false},
		{name: "too short", password: "Pw1", valid: false},
		{name: "no uppercase", password: "password1", valid: false},
		{name: "no number", password: "Passwordd", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}
