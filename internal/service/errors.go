package service

import (
	"connectrpc.com/connect"

	"github.com/mmynk/bistro/internal/apperror"
)

// toConnectError maps domain error kinds onto Connect codes.
func toConnectError(err error) *connect.Error {
	switch apperror.KindOf(err) {
	case apperror.KindInvalidState:
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case apperror.KindInvalidInput:
		return connect.NewError(connect.CodeInvalidArgument, err)
	case apperror.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// warningText renders a persistence warning for responses.
func warningText(err error) string {
	if err == nil {
		return ""
	}
	return "changes are kept in memory but could not be saved: " + err.Error()
}
