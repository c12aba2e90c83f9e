package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/localauth/internal/client/config"
	"github.com/dmitrijs2005/localauth/internal/client/services"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabasePath:   filepath.Join(t.TempDir(), "auth.db"),
		LogLevel:       "error",
		Hasher:         "sha256",
		CommandTimeout: 5 * time.Second,
	}
}

func TestNewApp_OK(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app.authService)
	require.Equal(t, services.StateUninitialized, app.authService.State())
	require.NoError(t, app.Close())
}

func TestNewApp_BadConfig(t *testing.T) {
	c := testConfig(t)
	c.Hasher = "md5"
	_, err := NewApp(context.Background(), c)
	require.Error(t, err)

	c = testConfig(t)
	c.LogLevel = "loud"
	_, err = NewApp(context.Background(), c)
	require.Error(t, err)

	c = testConfig(t)
	c.DatabasePath = filepath.Join(t.TempDir(), "missing", "dir", "auth.db")
	_, err = NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	app.reader = bufio.NewReader(strings.NewReader("signup\nJane\njane@example.com\nsecret1\nexit\n"))
	app.out = &out
	app.Run(ctx)
	require.Contains(t, out.String(), "Welcome, Jane!")

	app2, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	out.Reset()
	app2.reader = bufio.NewReader(strings.NewReader("profile\nlogout\nexit\n"))
	app2.out = &out
	app2.Run(ctx)
	require.True(t, app2.authService.IsReady())
	require.Contains(t, out.String(), "auth (jane@example.com)> ")
	require.Contains(t, out.String(), "Email: jane@example.com")
	require.Contains(t, out.String(), "Logged out.")

	app3, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	defer app3.Close()
	require.NoError(t, app3.authService.RestoreSession(ctx))
	_, ok := app3.authService.CurrentUser()
	require.False(t, ok)
}
