package common

// AuthorizationHeaderName is the HTTP header carrying "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates a request across logs.
const RequestIDHeaderName = "X-Request-ID"
