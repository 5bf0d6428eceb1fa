package auth

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startCallbackServer(t *testing.T, state string) (*CallbackServer, string) {
	t.Helper()
	s := NewCallbackServer("127.0.0.1:0", "/callback", state)
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s, "http://" + s.Addr()
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func awaitCallback(t *testing.T, s *CallbackServer) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.Await(ctx)
}

func TestCallbackCapturesCode(t *testing.T) {
	s, base := startCallbackServer(t, "")

	status, body := get(t, base+"/callback?code=abc123&scope=read")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Authorization Successful!")

	code, err := awaitCallback(t, s)
	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
}

func TestCallbackError(t *testing.T) {
	s, base := startCallbackServer(t, "")

	status, body := get(t, base+"/callback?error=access_denied")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Error: access_denied")

	_, err := awaitCallback(t, s)
	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, "access_denied", cbErr.Reason)
}

func TestCallbackIgnoresOtherRequests(t *testing.T) {
	s, base := startCallbackServer(t, "")

	status, _ := get(t, base+"/favicon.ico")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = get(t, base+"/callback")
	assert.Equal(t, http.StatusNotFound, status)

	resp, err := http.Post(base+"/callback?code=nope", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	status, _ = get(t, base+"/callback?code=real")
	assert.Equal(t, http.StatusOK, status)

	code, err := awaitCallback(t, s)
	require.NoError(t, err)
	assert.Equal(t, "real", code)
}

func TestCallbackStateMismatch(t *testing.T) {
	s, base := startCallbackServer(t, "expected")

	status, _ := get(t, base+"/callback?code=abc&state=forged")
	assert.Equal(t, http.StatusBadRequest, status)

	_, err := awaitCallback(t, s)
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestCallbackTimeout(t *testing.T) {
	s, _ := startCallbackServer(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Await(ctx)
	assert.ErrorIs(t, err, ErrCallbackTimeout)
}

func TestCallbackEscapesError(t *testing.T) {
	s, base := startCallbackServer(t, "")

	_, body := get(t, base+"/callback?error=%3Cscript%3E")
	assert.NotContains(t, body, "<script>")

	_, err := awaitCallback(t, s)
	assert.Error(t, err)
}
