package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdministratorRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"admin", true},
		{"Administrator", true},
		{"SUPERADMIN", true},
		{"Super Admin", true},
		{"  admin  ", true},
		{"Branch Admin", true}, // substring match
		{"staff", false},
		{"telecaller", false},
		{"pharmacist", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAdministratorRole(tt.role), "role %q", tt.role)
	}
}
