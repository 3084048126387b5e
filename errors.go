package twiki2moin

import (
	"errors"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"
)

// Sentinel errors for library operations.
var (
	ErrUnknownEncoding = twiki.ErrUnknownEncoding
	ErrDecode          = errors.New("decoding page failed")
)
