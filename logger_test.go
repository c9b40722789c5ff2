package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useELK(t *testing.T, status int) <-chan map[string]string {
	received := make(chan map[string]string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		w.WriteHeader(status)
		received <- msg
	}))
	t.Cleanup(server.Close)

	previous := elkUrl
	elkUrl = server.URL
	t.Cleanup(func() { elkUrl = previous })
	return received
}

func TestSendWebLogFromMatch(t *testing.T) {
	received := useELK(t, http.StatusOK)
	useLLM(t, nil)

	rec := doRequest(t, http.MethodPost, "/icf/match", `{"clinicalText": "환자는 걷기가 가능함"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case msg := <-received:
		assert.Equal(t, "ICF codes matched", msg["msg"])
		assert.Equal(t, "keyword", msg["source"])
		assert.Equal(t, "1", msg["matchCount"])
		assert.Equal(t, "/icf/match", msg["path"])
		assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), msg["requestId"])
		assert.Equal(t, "test", msg["environment"])
		assert.Equal(t, "info", msg["level"])
		for _, value := range msg {
			assert.NotContains(t, value, "걷기")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no log message received")
	}
}

func TestElkLoggerStatusError(t *testing.T) {
	useELK(t, http.StatusBadRequest)

	err := elkLogger(map[string]string{"requestId": "abc"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Request - abc")
}
