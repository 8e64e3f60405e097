package cfapi

import (
	"fmt"
	"net/http"

	"github.com/programme-lv/cfwatch/srvcerror"
)

const ErrCodeNetworkFailure = "network_failure"

func newErrNetworkFailure(cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNetworkFailure,
		"failed to fetch submissions from codeforces",
	).SetDebug(cause).SetHttpStatusCode(http.StatusBadGateway)
}

func newErrUnexpectedStatus(code int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNetworkFailure,
		fmt.Sprintf("codeforces api responded with http status %d", code),
	).SetHttpStatusCode(http.StatusBadGateway)
}

const ErrCodeApiFailure = "api_failure"

func newErrApiFailure(comment string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeApiFailure,
		fmt.Sprintf("codeforces api request failed: %s", comment),
	).SetHttpStatusCode(http.StatusBadGateway)
}

const ErrCodeInvalidCount = "invalid_count"

func newErrInvalidCount(count int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidCount,
		fmt.Sprintf("submission count must be positive, got %d", count),
	).SetHttpStatusCode(http.StatusBadRequest)
}
