package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
server:
  http:
    addr: 0.0.0.0:8000
    timeout: 5s
data:
  database:
    driver: mysql
    source: root:root@tcp(127.0.0.1:3306)/booking?parseTime=True
  redis:
    addr: 127.0.0.1:6379
    db: 1
client:
  payment_gateway:
    app_id: mock_app_id
    timeout: 2s
log:
  level: info
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", c.Server.Http.Addr)
	assert.Equal(t, "mysql", c.Data.Database.Driver)
	assert.Equal(t, 1, c.Data.Redis.Db)
	assert.Equal(t, 2*time.Second, c.Client.PaymentGateway.ParseTimeout())
	assert.NoError(t, c.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidConfig(t *testing.T) {
	// 缺少 data.database.source,加载时即报错
	content := `
server:
  http:
    addr: 0.0.0.0:8000
data:
  database:
    driver: mysql
client:
  payment_gateway:
    app_id: mock_app_id
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.database.source")
}

func TestParseTimeoutDefaults(t *testing.T) {
	var nilGw *PaymentGateway
	assert.Equal(t, 3*time.Second, nilGw.ParseTimeout())
	assert.Equal(t, 3*time.Second, (&PaymentGateway{Timeout: ""}).ParseTimeout())
	assert.Equal(t, 3*time.Second, (&PaymentGateway{Timeout: "bogus"}).ParseTimeout())
	assert.Equal(t, 3*time.Second, (&PaymentGateway{Timeout: "-1s"}).ParseTimeout())
	assert.Equal(t, 500*time.Millisecond, (&PaymentGateway{Timeout: "500ms"}).ParseTimeout())
}

func TestValidate(t *testing.T) {
	base := func() *Bootstrap {
		b := &Bootstrap{
			Server: &Server{},
			Data:   &Data{},
			Client: &Client{PaymentGateway: &PaymentGateway{AppID: "a"}},
		}
		b.Server.Http.Addr = "0.0.0.0:8000"
		b.Data.Database.Source = "dsn"
		return b
	}

	assert.NoError(t, base().Validate())

	noServer := base()
	noServer.Server = nil
	assert.Error(t, noServer.Validate())

	noAddr := base()
	noAddr.Server.Http.Addr = ""
	assert.Error(t, noAddr.Validate())

	noSource := base()
	noSource.Data.Database.Source = ""
	assert.Error(t, noSource.Validate())

	noGateway := base()
	noGateway.Client = nil
	assert.Error(t, noGateway.Validate())
}
