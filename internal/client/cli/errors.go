package cli

import "errors"

var errUsage = errors.New("usage")
