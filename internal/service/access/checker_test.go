package access

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/careaxis/hms-api/internal/model"
)

func newTestChecker() *Checker {
	return NewChecker(
		[]string{"telecaller/mynumbers"},
		[]string{"superuser"},
		zerolog.Nop(),
		nil,
	)
}

func staffSession() *model.Session {
	return &model.Session{
		Token: "tok",
		User:  &model.User{Username: "drsmith", RoleName: "Staff"},
		Menu: model.Menu{
			{
				Path:    "admin/patients",
				Actions: model.Actions{View: true, Add: true, Edit: true},
			},
			{
				Path:    "admin/pharmacy",
				Actions: model.Actions{View: true},
			},
		},
	}
}

func TestCheckMenuGrants(t *testing.T) {
	checker := newTestChecker()
	sess := staffSession()

	tests := []struct {
		path    string
		action  model.Action
		allowed bool
		reason  string
	}{
		{"admin/patients", model.ActionView, true, ReasonMenuGrant},
		{"admin/patients", model.ActionAdd, true, ReasonMenuGrant},
		{"admin/patients", model.ActionDelete, false, ReasonMenuDenied},
		{"admin/pharmacy", model.ActionView, true, ReasonMenuGrant},
		{"admin/pharmacy", model.ActionDelete, false, ReasonMenuDenied},
		{"admin/collections", model.ActionView, false, ReasonNotInMenu},
	}

	for _, tt := range tests {
		d := checker.Check(sess, tt.path, tt.action)
		assert.Equal(t, tt.allowed, d.Allowed, "%s %s", tt.path, tt.action)
		assert.Equal(t, tt.reason, d.Reason, "%s %s", tt.path, tt.action)
	}
}

func TestCheckAdminBypass(t *testing.T) {
	checker := newTestChecker()

	// An administrator role skips the menu entirely, even with no menu
	// loaded at all.
	sess := &model.Session{
		User: &model.User{Username: "root", RoleName: "Branch Admin"},
	}
	d := checker.Check(sess, "admin/collections", model.ActionDelete)
	assert.True(t, d.Allowed)
	assert.Equal(t, ReasonAdminBypass, d.Reason)

	// Configured usernames bypass regardless of role, case-insensitively.
	sess = &model.Session{
		User: &model.User{Username: "SuperUser", RoleName: "Staff"},
	}
	d = checker.Check(sess, "admin/labtestmaster", model.ActionEdit)
	assert.True(t, d.Allowed)
	assert.Equal(t, ReasonAdminBypass, d.Reason)
}

func TestCheckAllowList(t *testing.T) {
	checker := newTestChecker()
	sess := staffSession()

	// Allow-listed paths are open to any authenticated user for any
	// action, without a menu entry.
	d := checker.Check(sess, "telecaller/mynumbers", model.ActionView)
	assert.True(t, d.Allowed)
	assert.Equal(t, ReasonAllowList, d.Reason)
}

func TestCheckNoSession(t *testing.T) {
	checker := newTestChecker()

	d := checker.Check(nil, "admin/patients", model.ActionView)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNoSession, d.Reason)

	d = checker.Check(&model.Session{}, "admin/patients", model.ActionView)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNoSession, d.Reason)
}

func TestCheckDeterministic(t *testing.T) {
	checker := newTestChecker()
	sess := staffSession()

	first := checker.Check(sess, "admin/pharmacy", model.ActionView)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, checker.Check(sess, "admin/pharmacy", model.ActionView))
	}
}
