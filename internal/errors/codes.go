package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to user-facing messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed/forged token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token was logged out
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthCodeInvalid        = "AUTH_CODE_INVALID"        // wrong reset code
	AuthCodeExpired        = "AUTH_CODE_EXPIRED"        // reset code expired

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin only
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // owner only

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // malformed body
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad path ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad field format

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound          = "PRODUCT_NOT_FOUND"
	ProductInsufficientStock = "PRODUCT_INSUFFICIENT_STOCK"
	ProductNotOwned          = "PRODUCT_NOT_OWNED"

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound = "CATEGORY_NOT_FOUND"
	CategoryInUse    = "CATEGORY_IN_USE"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"
	OrderInvalidStatus  = "ORDER_INVALID_STATUS"
	OrderNotCancellable = "ORDER_NOT_CANCELLABLE"

	// ==================== Seller onboarding (ONBOARDING_) ====================
	OnboardingNotFound      = "ONBOARDING_NOT_FOUND"       // no such applicant
	OnboardingInvalidStatus = "ONBOARDING_INVALID_STATUS"  // bad status value
	OnboardingNotPending    = "ONBOARDING_NOT_PENDING"     // decision on non-pending record
	OnboardingInvalidField  = "ONBOARDING_INVALID_FIELD"   // malformed identifier on submit

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
