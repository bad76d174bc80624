package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "github.com/decarvalhoe/umbra-payment-service/internal/adapter/http/handler"
	"github.com/decarvalhoe/umbra-payment-service/internal/core/domain"
	"github.com/decarvalhoe/umbra-payment-service/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testApp wires the real in-memory services behind an httptest server.
type testApp struct {
	server *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := zerolog.Nop()
	ledger := service.NewLedgerService("UMBC", log)

	seed := int64(1)
	gacha, err := service.NewGachaService(domain.DefaultPools(), 50, &seed, ledger, log)
	require.NoError(t, err)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ledger:      ledger,
		Gacha:       gacha,
		DefaultPool: "standard",
		Logger:      log,
	})

	app := &testApp{server: httptest.NewServer(router)}
	t.Cleanup(app.server.Close)
	return app
}

// postJSON sends a JSON body and decodes the response envelope.
func (a *testApp) postJSON(t *testing.T, path, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

// getJSON fetches a path and decodes the response envelope.
func (a *testApp) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp.Body)
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&payload))
	return payload
}

func dataOf(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	data, ok := payload["data"].(map[string]any)
	require.True(t, ok, "payload has no data object: %v", payload)
	return data
}

// balanceOf reads a wallet's current balance through the API.
func (a *testApp) balanceOf(t *testing.T, userID string) string {
	t.Helper()
	status, payload := a.getJSON(t, "/api/v1/wallets/"+userID)
	require.Equal(t, http.StatusOK, status)
	wallet := dataOf(t, payload)["wallet"].(map[string]any)
	return wallet["balance"].(string)
}
