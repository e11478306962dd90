package errors

var (
	// Domain errors returned by the device usecase
	ErrInvalidSignature      = InvalidArg("signature does not recover a valid signer")
	ErrExpiredAuthorization  = InvalidArg("exceeded expiration date")
	ErrInvalidExpirationDate = InvalidArg("date must be like 2018-04-20T08:18:36+00:00")
	ErrSelfPairing           = InvalidArg("both signing addresses must be different")
	ErrSelfNotification      = InvalidArg("signing address cannot be in the destination addresses")
	ErrDuplicatedAddresses   = InvalidArg("duplicated addresses are forbidden")
	ErrInvalidAddress        = InvalidArg("address must be EIP-55 checksummed")
	ErrNoDevices             = InvalidArg("at least one destination address is required")
	ErrInvalidMessage        = InvalidArg("message must be a valid stringified JSON object")
	ErrMessageTooLong        = InvalidArg("message exceeds maximum length")
	ErrInvalidClient         = InvalidArg("client must be one of android, ios, extension")
	ErrInvalidPushToken      = InvalidArg("push token not valid for this project")
	ErrDeviceNotFound        = Unprocessable("device not registered")
	ErrNoEligibleDevice      = NotFound("no paired device found")
	ErrUnauthorizedServer    = Unauthorized("trusted server token not valid")
)

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}

func ErrPairingFailed(cause error) error {
	return Wrap(CodeInternal, "pairing failed", cause)
}

func ErrRoutingFailed(cause error) error {
	return Wrap(CodeInternal, "notification routing failed", cause)
}
