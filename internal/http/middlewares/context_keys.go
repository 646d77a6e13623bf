package middlewares

const (
	// Identity set by RequireAuth.
	CtxUserID = "auth.userID"
	CtxEmail  = "auth.email"
	CtxRole   = "auth.role"

	// Set by RequestID.
	CtxRequestID = "request_id"
)
