package service

// ValidationError carries a message that is safe to show to the submitter.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// User-facing messages shared by the public form endpoints.
const (
	MsgMissingRequiredFields = "Please fill in all required fields."
	MsgMissingFields         = "Please fill in all fields."
	MsgInvalidMapsLink       = "Please provide a valid Google Maps link."
	MsgDuplicateShop         = "This shop appears to be already listed."
	MsgSomethingWentWrong    = "Something went wrong. Please try again."
	MsgRequestNotFound       = "Request not found."
	MsgShopInsertFailed      = "Failed to add shop to database."
	MsgStatusUpdateFailed    = "Failed to update request status."
)
