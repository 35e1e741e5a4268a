package credential

import "errors"

var ErrVerificationRequired = errors.New("current credential must be verified before a change")
