package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSlackRequestVerificationMiddleware(t *testing.T) {

	secret := "super-secret-signature-string"
	invalidSecret := "invalid-super-secret-signature-string"

	bodyData := []byte("command=%2Fanpfiff&channel_id=C123")

	var forwarded string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		forwarded = string(b)
		w.WriteHeader(http.StatusOK)
	})
	middleware := SlackVerifyMiddleware(secret)

	staleRequest := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(string(bodyData)))
	signSlackHttpRequestAt(staleRequest, bodyData, secret, time.Now().Add(-time.Hour).Unix())

	testCases := []struct {
		name         string
		request      *http.Request
		expectedCode int
	}{
		{
			name:         "Valid Signature",
			request:      signSlackHttpRequest(httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(string(bodyData))), bodyData, secret),
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid Signature",
			request:      signSlackHttpRequest(httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(string(bodyData))), bodyData, invalidSecret),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "No Signature",
			request:      httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(string(bodyData))),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Stale Timestamp",
			request:      staleRequest,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Error Reading Body",
			request:      signSlackHttpRequest(httptest.NewRequest(http.MethodPost, "/commands", &errorReader{}), bodyData, secret),
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			forwarded = ""
			recorder := httptest.NewRecorder()
			middleware(handler).ServeHTTP(recorder, tc.request)
			if recorder.Result().StatusCode != tc.expectedCode {
				t.Errorf("TestSlackRequestVerificationMiddleware - %s: Expected status %d but found %d", tc.name, tc.expectedCode, recorder.Result().StatusCode)
			}
			if tc.expectedCode == http.StatusOK && forwarded != string(bodyData) {
				t.Errorf("Expected body %q to reach the handler, got %q", bodyData, forwarded)
			}
		})
	}

}

func signSlackHttpRequest(r *http.Request, data []byte, secret string) *http.Request {
	return signSlackHttpRequestAt(r, data, secret, time.Now().Unix())
}

func signSlackHttpRequestAt(r *http.Request, data []byte, secret string, timestamp int64) *http.Request {
	basestring := "v0" + ":" + fmt.Sprint(timestamp) + ":" + string(data)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(basestring))
	signature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	r.Header.Set("x-slack-request-timestamp", fmt.Sprint(timestamp))
	r.Header.Set("x-slack-signature", signature)

	return r
}

// errorReader simulates a read error on request body
type errorReader struct{}

func (er *errorReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("simulated read error")
}

func (er *errorReader) Close() error {
	return nil
}
