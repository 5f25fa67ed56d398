package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// current user
	RouteMe           = RouteApiV1 + "/me"
	RouteMePassword   = RouteMe + "/password"
	RouteMeOnboarding = RouteMe + "/onboarding"

	// admin
	RouteUsers          = RouteApiV1 + "/users"
	RouteUser           = RouteUsers + "/:username"
	RouteUserDocuments  = RouteUser + "/documents"
	RouteStats          = RouteApiV1 + "/stats"
	RouteAdminDocuments = RouteApiV1 + "/admin/documents"
	RouteAuditLogs      = RouteApiV1 + "/audit-logs"

	// documents
	RouteDocuments    = RouteApiV1 + "/documents"
	RouteDocument     = RouteDocuments + "/:document_id"
	RouteDocumentFile = RouteDocument + "/file"
	RouteDocumentAcls = RouteDocument + "/acls"
	RouteDocumentAcl  = RouteDocumentAcls + "/:perm/:target_id"

	// signups
	RouteRegistrations       = RouteApiV1 + "/registrations"
	RouteRegistration        = RouteRegistrations + "/:username"
	RouteRegistrationApprove = RouteRegistration + "/approve"

	// groups
	RouteGroups       = RouteApiV1 + "/groups"
	RouteGroup        = RouteGroups + "/:name"
	RouteGroupMembers = RouteGroup + "/members"
	RouteGroupMember  = RouteGroupMembers + "/:username"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
