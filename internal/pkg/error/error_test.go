package error

import (
	"net/http"
	"testing"
)

func TestMapHttpStatusToError(t *testing.T) {
	cases := []struct {
		status   int
		wantType string
	}{
		{http.StatusBadRequest, "bad-request-body"},
		{http.StatusUnauthorized, "authorization-error"},
		{http.StatusForbidden, "forbidden"},
		{http.StatusNotFound, "not-found"},
		{http.StatusMethodNotAllowed, "method-not-allowed"},
		{http.StatusServiceUnavailable, "service-unavailable"},
		{http.StatusGatewayTimeout, "gateway-timeout"},
		{http.StatusTeapot, "internal-server-error"},
	}
	for _, tc := range cases {
		err := MapHttpStatusToError(tc.status, http.StatusText(tc.status))
		if err.Error() != tc.wantType {
			t.Errorf("MapHttpStatusToError(%d) type = %q, want %q", tc.status, err.Error(), tc.wantType)
		}
		if tc.status != http.StatusTeapot && err.HttpCode() != tc.status {
			t.Errorf("MapHttpStatusToError(%d) code = %d", tc.status, err.HttpCode())
		}
		if err.ErrorDesc() != http.StatusText(tc.status) {
			t.Errorf("desc = %q", err.ErrorDesc())
		}
	}
}

func TestUpstreamErrorKeepsBody(t *testing.T) {
	body := []byte(`{"error":{"message":"rate limited"}}`)
	err := UpstreamError(http.StatusTooManyRequests, body)
	if err.HttpCode() != http.StatusTooManyRequests || string(err.Body()) != string(body) {
		t.Errorf("code = %d body = %s", err.HttpCode(), err.Body())
	}
	if From(err) != err {
		t.Error("From should unwrap *Error")
	}
}
