package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/mines"
)

func TestDefaults(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	app, err := NewApp(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", app.Addr)
	assert.Equal(t, time.Minute, app.SweepEvery)
	assert.Equal(t, 30*time.Minute, app.SessionTTL)
	assert.False(t, Development(v))

	game, err := NewGame(v)
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{Width: 30, Height: 16, MineCount: 70}, game.Defaults)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SWEEPER_APP_ADDR", ":9090")
	t.Setenv("SWEEPER_APP_DEVELOPMENT", "1")
	t.Setenv("SWEEPER_APP_SESSION_TTL", "5s")
	t.Setenv("SWEEPER_GAME_WIDTH", "9")
	t.Setenv("SWEEPER_GAME_HEIGHT", "9")
	t.Setenv("SWEEPER_GAME_MINE_COUNT", "10")

	v, err := New()
	require.NoError(t, err)
	assert.True(t, Development(v))

	app, err := NewApp(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", app.Addr)
	assert.Equal(t, 5*time.Second, app.SessionTTL)

	game, err := NewGame(v)
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10}, game.Defaults)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"app:\n  base_path: /api\ngame:\n  max_width: 40\n",
	), 0o600))
	t.Setenv("SWEEPER_CONFIG", path)
	t.Setenv("SWEEPER_GAME_MAX_HEIGHT", "20")

	v, err := New()
	require.NoError(t, err)

	app, err := NewApp(v)
	require.NoError(t, err)
	assert.Equal(t, "/api", app.BasePath)

	game, err := NewGame(v)
	require.NoError(t, err)
	assert.Equal(t, 40, game.MaxWidth)
	assert.Equal(t, 20, game.MaxHeight)
}

func TestMissingConfigFile(t *testing.T) {
	t.Setenv("SWEEPER_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := New()
	assert.Error(t, err)
}

func TestInvalidDefaultGame(t *testing.T) {
	t.Setenv("SWEEPER_GAME_WIDTH", "0")
	v, err := New()
	require.NoError(t, err)
	_, err = NewGame(v)
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
}

func TestGameCheck(t *testing.T) {
	g := &Game{MaxWidth: 10, MaxHeight: 5}
	assert.NoError(t, g.Check(mines.GameParams{Width: 10, Height: 5, MineCount: 3}))
	assert.ErrorIs(t, g.Check(mines.GameParams{Width: 11, Height: 5}), mines.ErrInvalidParams)
	assert.ErrorIs(t, g.Check(mines.GameParams{Width: 3, Height: 3, MineCount: -1}), mines.ErrInvalidParams)
}

func TestJWT(t *testing.T) {
	j, err := NewJWTWithSecret([]byte("s3cret"))
	require.NoError(t, err)

	token, err := j.Sign(jwt.RegisteredClaims{Subject: "abc"})
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = j.ParseWithClaims(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.Subject)

	other, err := NewJWTWithSecret([]byte("other"))
	require.NoError(t, err)
	_, err = other.ParseWithClaims(token, &jwt.RegisteredClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = NewJWTWithSecret(nil)
	assert.Error(t, err)
}

func TestNewJWTSecretSources(t *testing.T) {
	t.Run("missing in production", func(t *testing.T) {
		v, err := New()
		require.NoError(t, err)
		_, err = NewJWT(v)
		assert.ErrorContains(t, err, "SWEEPER_JWT_SECRET")
	})

	t.Run("random in development", func(t *testing.T) {
		t.Setenv("SWEEPER_APP_DEVELOPMENT", "true")
		v, err := New()
		require.NoError(t, err)
		j, err := NewJWT(v)
		require.NoError(t, err)
		assert.Len(t, j.secret, 32)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(path, []byte("filesecret\n"), 0o600))
		t.Setenv("SWEEPER_JWT_SECRET_FILE", path)
		v, err := New()
		require.NoError(t, err)
		j, err := NewJWT(v)
		require.NoError(t, err)
		assert.Equal(t, []byte("filesecret"), j.secret)
	})
}

func TestWebSocketOrigins(t *testing.T) {
	t.Setenv("SWEEPER_WS_ALLOWED_ORIGINS", "https://a.example https://b.example")
	v, err := New()
	require.NoError(t, err)
	ws, err := NewWebSocket(v)
	require.NoError(t, err)
	assert.EqualValues(t, 64<<10, ws.ReadLimit)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://b.example")
	assert.True(t, ws.Upgrader.CheckOrigin(req))
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, ws.Upgrader.CheckOrigin(req))
}
