package permission

// Canonical action names understood by the console. Actions are opaque
// tokens; these constants only exist so callers and tables agree on
// spelling.
const (
	ActionShareView      = "share:view"
	ActionShareCreate    = "share:create"
	ActionShareDeleteOwn = "share:delete_own"
	ActionShareSave      = "share:save"
	ActionUserViewOwn    = "user:view_own"
	ActionUserUpdateOwn  = "user:update_own"
	ActionStatsViewOwn   = "stats:view_own"

	ActionSharePriority    = "share:priority"
	ActionShareBatchCreate = "share:batch_create"
	ActionShareExport      = "share:export"
	ActionShareReparse     = "share:reparse"
	ActionShareAuditOwn    = "share:audit_own"
	ActionStatsAdvanced    = "stats:view_advanced"
	ActionRateLimitHigh    = "api:rate_limit_high"
	ActionAdFree           = "feature:ad_free"
)

// UserActions is the base allow-set shared by every authenticated
// non-admin user.
func UserActions() []string {
	return []string{
		ActionShareView,
		ActionShareCreate,
		ActionShareDeleteOwn,
		ActionShareSave,
		ActionUserViewOwn,
		ActionUserUpdateOwn,
		ActionStatsViewOwn,
	}
}

// VIPActions is the VIP allow-set: a strict superset of [UserActions] plus
// the VIP-only actions (priority handling, batch creation, export, reparse,
// self-audit, advanced stats, elevated rate limit, ad-free).
func VIPActions() []string {
	return append(UserActions(),
		ActionSharePriority,
		ActionShareBatchCreate,
		ActionShareExport,
		ActionShareReparse,
		ActionShareAuditOwn,
		ActionStatsAdvanced,
		ActionRateLimitHigh,
		ActionAdFree,
	)
}
