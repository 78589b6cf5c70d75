package prometheus

import (
	admingate "github.com/kovrae/admingate"
)

// CounterDef binds a core counter to its Prometheus name.
//
// CounterDef instances are intended to be configured during initialization
// and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   admingate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter, in a stable order.
var CounterDefs = []CounterDef{
	{ID: admingate.MetricLoginSuccess, Name: "admingate_login_success_total", Help: "Fully completed interactive logins."},
	{ID: admingate.MetricLoginFailure, Name: "admingate_login_failure_total", Help: "Rejected credential exchanges."},
	{ID: admingate.MetricLogout, Name: "admingate_logout_total", Help: "Explicit logout operations."},
	{ID: admingate.MetricRevalidateSuccess, Name: "admingate_revalidate_success_total", Help: "Profile revalidations that landed."},
	{ID: admingate.MetricSelfHealLogout, Name: "admingate_self_heal_logout_total", Help: "Sessions cleared by a failed revalidation."},
	{ID: admingate.MetricRefreshSuccess, Name: "admingate_refresh_success_total", Help: "Successful token renewals."},
	{ID: admingate.MetricRefreshFailure, Name: "admingate_refresh_failure_total", Help: "Rejected token renewals."},
	{ID: admingate.MetricGuardAllow, Name: "admingate_guard_allow_total", Help: "Navigations allowed unchanged."},
	{ID: admingate.MetricGuardRedirectLogin, Name: "admingate_guard_redirect_login_total", Help: "Navigations rewritten to the login page."},
	{ID: admingate.MetricGuardRedirectHome, Name: "admingate_guard_redirect_home_total", Help: "Admins bounced off the login page."},
	{ID: admingate.MetricGuardRedirectFallback, Name: "admingate_guard_redirect_fallback_total", Help: "Non-admins sent to the landing page."},
	{ID: admingate.MetricStorageFailure, Name: "admingate_storage_failure_total", Help: "Swallowed durable-storage errors."},
}
