package hxcontent

import "errors"

// Sentinel errors for content operations.
var (
	ErrInvalidArgument  = errors.New("hxcontent: invalid argument")
	ErrUninitialized    = errors.New("hxcontent: content template not extracted")
	ErrNotFound         = errors.New("hxcontent: not found")
	ErrInvalidFormat    = errors.New("hxcontent: invalid context format")
	ErrSignatureInvalid = errors.New("hxcontent: context signature verification failed")
	ErrDecryptFailed    = errors.New("hxcontent: context decryption failed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUsageError checks if err reports a caller mistake: a bad argument or an
// operation on a container whose template was never extracted.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrUninitialized)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}
