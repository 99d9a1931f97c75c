package iofetch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnharvest/pkg/errcode"
)

// RequestError creates an error for a failed page request
// (network failure, timeout, cancelled context).
func RequestError(offset int, err error) error {
	msg := `Page request failed

<em>Offset:</em> %d

<em>Possible causes:</em>
  - Network failure or timeout
  - Provider temporarily unavailable`

	vars := []any{offset}

	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("page request at offset %d: %w", offset, err),
	}
}

// StatusError creates an error for a non-2xx provider response.
func StatusError(offset, status int) error {
	msg := `Provider returned an error status

<em>Offset:</em> %d
<em>Status:</em> %d`

	vars := []any{offset, status}

	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"page request at offset %d: status %d", offset, status),
	}
}
