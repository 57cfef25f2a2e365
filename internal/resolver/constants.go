package resolver

// Error messages
const (
	ErrMsgNonPositiveQuantity = "quantity must be positive"
)

// Log messages
const (
	LogMsgResolutionComplete = "Material resolution complete"
	LogMsgResolutionAborted  = "Material resolution aborted"
)
