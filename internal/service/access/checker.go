package access

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/pkg/metrics"
)

// Decision reasons, also used as metric labels.
const (
	ReasonAdminBypass = "admin_bypass"
	ReasonAllowList   = "allow_list"
	ReasonMenuGrant   = "menu_grant"
	ReasonMenuDenied  = "menu_denied"
	ReasonNotInMenu   = "not_in_menu"
	ReasonNoSession   = "no_session"
)

// Decision is the outcome of one (session, path, action) check. The
// same inputs always produce the same decision; Check never touches the
// network.
type Decision struct {
	Allowed bool
	Reason  string
}

// Checker decides whether a session may perform an action on a module.
type Checker struct {
	allowList      map[string]struct{}
	adminUsernames map[string]struct{}
	logger         zerolog.Logger
	metrics        *metrics.Metrics
}

func NewChecker(allowListPaths, adminUsernames []string, logger zerolog.Logger, m *metrics.Metrics) *Checker {
	allow := make(map[string]struct{}, len(allowListPaths))
	for _, p := range allowListPaths {
		allow[p] = struct{}{}
	}
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, u := range adminUsernames {
		admins[strings.ToLower(u)] = struct{}{}
	}
	return &Checker{
		allowList:      allow,
		adminUsernames: admins,
		logger:         logger,
		metrics:        m,
	}
}

// Check evaluates the grant order: administrator bypass, then the
// allow-list carve-out, then the permission menu. Bypass grants carry
// no audit trail upstream, so they are at least logged and counted.
func (c *Checker) Check(sess *model.Session, path string, action model.Action) Decision {
	if sess == nil || sess.User == nil {
		return c.record(Decision{Allowed: false, Reason: ReasonNoSession}, path, action, "")
	}

	if c.isAdministrator(sess.User) {
		return c.record(Decision{Allowed: true, Reason: ReasonAdminBypass}, path, action, sess.User.Username)
	}

	if _, ok := c.allowList[path]; ok {
		return c.record(Decision{Allowed: true, Reason: ReasonAllowList}, path, action, sess.User.Username)
	}

	entry, found := sess.Menu.Lookup(path)
	if !found {
		return c.record(Decision{Allowed: false, Reason: ReasonNotInMenu}, path, action, sess.User.Username)
	}
	if !entry.Actions.Allows(action) {
		return c.record(Decision{Allowed: false, Reason: ReasonMenuDenied}, path, action, sess.User.Username)
	}
	return c.record(Decision{Allowed: true, Reason: ReasonMenuGrant}, path, action, sess.User.Username)
}

func (c *Checker) isAdministrator(user *model.User) bool {
	if model.IsAdministratorRole(user.RoleName) {
		return true
	}
	_, ok := c.adminUsernames[strings.ToLower(user.Username)]
	return ok
}

func (c *Checker) record(d Decision, path string, action model.Action, username string) Decision {
	outcome := "denied"
	if d.Allowed {
		outcome = "granted"
	}
	c.metrics.IncGuardDecision(outcome, d.Reason)
	c.logger.Debug().
		Str("path", path).
		Str("action", string(action)).
		Str("username", username).
		Str("reason", d.Reason).
		Bool("allowed", d.Allowed).
		Msg("guard decision")
	return d
}
