package conf

import (
	"fmt"
	"time"
)

type Bootstrap struct {
	Server *Server `yaml:"server" json:"server"`
	Data   *Data   `yaml:"data" json:"data"`
	Client *Client `yaml:"client" json:"client"`
	Log    *Log    `yaml:"log" json:"log"`
}

type Server struct {
	Http struct {
		Addr    string `yaml:"addr" json:"addr"`
		Timeout string `yaml:"timeout" json:"timeout"`
	} `yaml:"http" json:"http"`
}

type Data struct {
	Database struct {
		Driver          string `yaml:"driver" json:"driver"`
		Source          string `yaml:"source" json:"source"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
	} `yaml:"database" json:"database"`
	Redis struct {
		Addr         string `yaml:"addr" json:"addr"`
		Password     string `yaml:"password" json:"password"`
		Db           int    `yaml:"db" json:"db"`
		ReadTimeout  string `yaml:"read_timeout" json:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout" json:"write_timeout"`
		DialTimeout  string `yaml:"dial_timeout" json:"dial_timeout"`
		PoolSize     int    `yaml:"pool_size" json:"pool_size"`
		MinIdleConns int    `yaml:"min_idle_conns" json:"min_idle_conns"`
	} `yaml:"redis" json:"redis"`
}

type Client struct {
	PaymentGateway *PaymentGateway `yaml:"payment_gateway" json:"payment_gateway"`
}

// PaymentGateway 支付网关配置
// 本地/测试环境没有支付商凭据时使用内置的确定性模拟网关
type PaymentGateway struct {
	AppID   string `yaml:"app_id" json:"app_id"`
	Timeout string `yaml:"timeout" json:"timeout"`
}

// ParseTimeout 解析支付网关调用超时时间,非法或未配置时返回默认值
func (p *PaymentGateway) ParseTimeout() time.Duration {
	if p == nil || p.Timeout == "" {
		return 3 * time.Second
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
}

// Validate validates the configuration
func (b *Bootstrap) Validate() error {
	if b.Server == nil {
		return fmt.Errorf("server configuration is required")
	}
	if b.Server.Http.Addr == "" {
		return fmt.Errorf("server.http.addr is required")
	}
	if b.Data == nil {
		return fmt.Errorf("data configuration is required")
	}
	if b.Data.Database.Source == "" {
		return fmt.Errorf("data.database.source is required")
	}
	if b.Client == nil || b.Client.PaymentGateway == nil {
		return fmt.Errorf("client.payment_gateway configuration is required")
	}
	return nil
}
