package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "something went wrong, try again later"

	OTPCooldownCode              = 2001
	OTPCooldownMessage           = "a code was sent recently, wait before requesting another"
	OTPDispatchFailedCode        = 2002
	OTPDispatchFailedMessage     = "could not deliver the verification code, try again"
	OTPInvalidOrExpiredCode      = 2003
	OTPInvalidOrExpiredMessage   = "verification code is invalid or expired"
	OTPIncorrectCodeCode         = 2004
	OTPIncorrectCodeMessage      = "incorrect verification code"
	OTPLockedCode                = 2005
	OTPLockedMessage             = "too many incorrect attempts, request a new code"
	OTPInvalidChannelCode        = 2006
	OTPInvalidChannelMessage     = "channel must be EMAIL or MESSAGING"
	OTPInvalidDestinationCode    = 2007
	OTPInvalidDestinationMessage = "destination is not a valid address for the channel"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case OTPCooldownCode:
		errorStruct.ErrorCode = OTPCooldownCode
		errorStruct.ErrorMessage = OTPCooldownMessage
	case OTPDispatchFailedCode:
		errorStruct.ErrorCode = OTPDispatchFailedCode
		errorStruct.ErrorMessage = OTPDispatchFailedMessage
	case OTPInvalidOrExpiredCode:
		errorStruct.ErrorCode = OTPInvalidOrExpiredCode
		errorStruct.ErrorMessage = OTPInvalidOrExpiredMessage
	case OTPIncorrectCodeCode:
		errorStruct.ErrorCode = OTPIncorrectCodeCode
		errorStruct.ErrorMessage = OTPIncorrectCodeMessage
	case OTPLockedCode:
		errorStruct.ErrorCode = OTPLockedCode
		errorStruct.ErrorMessage = OTPLockedMessage
	case OTPInvalidChannelCode:
		errorStruct.ErrorCode = OTPInvalidChannelCode
		errorStruct.ErrorMessage = OTPInvalidChannelMessage
	case OTPInvalidDestinationCode:
		errorStruct.ErrorCode = OTPInvalidDestinationCode
		errorStruct.ErrorMessage = OTPInvalidDestinationMessage
	}

	return errorStruct
}
