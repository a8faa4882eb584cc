package serve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/safe-txdetails/pkg/logger"
	"github.com/smartcontractkit/safe-txdetails/server"
)

func TestNewCommand_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewCommand(Config{})
	assert.Equal(t, "serve", cmd.Use)
	assert.Equal(t, serveShort, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("listen"))
	assert.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestServe(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "txdetails.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen_address: 127.0.0.1:9911\n"), 0o600))

	tests := []struct {
		name     string
		args     []string
		wantAddr string
	}{
		{name: "configured address", args: []string{"--config", path}, wantAddr: "127.0.0.1:9911"},
		{name: "listen flag wins", args: []string{"--config", path, "--listen", ":0"}, wantAddr: ":0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				gotAddr   string
				gotStatus int
			)
			runner := func(_ context.Context, srv *server.Server, addr string) error {
				gotAddr = addr

				rec := httptest.NewRecorder()
				srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/formats", nil))
				gotStatus = rec.Code

				return nil
			}

			cmd := NewCommand(Config{Logger: logger.Test(t), Deps: Deps{Runner: runner}})
			cmd.SetArgs(tt.args)
			cmd.SetContext(t.Context())
			require.NoError(t, cmd.Execute())

			assert.Equal(t, tt.wantAddr, gotAddr)
			assert.Equal(t, http.StatusOK, gotStatus)
		})
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "txdetails.yml")
	require.NoError(t, os.WriteFile(path, []byte("gateway:\n  retry_attempts: 0\n"), 0o600))

	cmd := NewCommand(Config{Logger: logger.Nop(), Deps: Deps{Runner: func(context.Context, *server.Server, string) error {
		t.Fatal("runner must not be called")
		return nil
	}}})
	cmd.SetArgs([]string{"--config", path})
	cmd.SetContext(t.Context())

	err := cmd.Execute()
	require.ErrorContains(t, err, "gateway.retry_attempts")
}
