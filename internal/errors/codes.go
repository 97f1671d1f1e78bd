package errors

// Error codes returned in the "error" field of JSON error bodies.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these to their own copy.

const (
	// ==================== AUTH_ ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthWeakPassword       = "AUTH_WEAK_PASSWORD"
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID"
	AuthCodeInvalid        = "AUTH_CODE_INVALID"

	// ==================== AUTHZ_ ====================
	AuthzForbidden       = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly       = "AUTHZ_ADMIN_ONLY"
	AuthzNotInChat       = "AUTHZ_NOT_IN_CHAT"
	AuthzConfigured      = "AUTHZ_CONFIGURED_ADMIN"
	AuthzEmailUnverified = "AUTHZ_EMAIL_UNVERIFIED"

	// ==================== VALIDATION_ ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationTooLong      = "VALIDATION_TOO_LONG"

	// ==================== RESOURCE_ ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== SHOP_ ====================
	ShopNotFound        = "SHOP_NOT_FOUND"
	ShopRequestNotFound = "SHOP_REQUEST_NOT_FOUND"
	ShopRequestClosed   = "SHOP_REQUEST_CLOSED"
	ShopInsertFailed    = "SHOP_INSERT_FAILED"

	// ==================== SERVICE_REQUEST_ ====================
	ServiceRequestNotFound      = "SERVICE_REQUEST_NOT_FOUND"
	ServiceRequestInvalidStatus = "SERVICE_REQUEST_INVALID_STATUS"

	// ==================== CHAT_ ====================
	ChatEmptyMessage   = "CHAT_EMPTY_MESSAGE"
	ChatMessageTooLong = "CHAT_MESSAGE_TOO_LONG"

	// ==================== ADMIN_ ====================
	AdminGrantExists   = "ADMIN_GRANT_EXISTS"
	AdminGrantNotFound = "ADMIN_GRANT_NOT_FOUND"

	// ==================== UPLOAD_ ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadForeignURL      = "UPLOAD_FOREIGN_URL"
	UploadUnavailable     = "UPLOAD_UNAVAILABLE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== INTERNAL_ ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
