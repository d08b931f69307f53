package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL; clients map these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // bad token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // username taken at signup

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // resource belongs to another business

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // generic missing resource
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // already exists

	// ==================== Cars (CAR_) ====================
	CarNotFound = "CAR_NOT_FOUND" // unknown plate for this business

	// ==================== Assignments (ASSIGNMENT_) ====================
	AssignmentNotFound         = "ASSIGNMENT_NOT_FOUND"          // unknown id, or completion race lost
	AssignmentAlreadyCompleted = "ASSIGNMENT_ALREADY_COMPLETED"  // terminal state reached

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // non-image content type
	UploadFailed          = "UPLOAD_FAILED"            // presign failure

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unclassified failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage failure
	InternalDataIntegrity = "INTERNAL_DATA_INTEGRITY" // completed wash could not be credited
)
