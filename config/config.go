package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Server   *Server         `json:"server" yaml:"server"`
	Database *Database       `json:"database" yaml:"database"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Loyalty  *Loyalty        `json:"loyalty" yaml:"loyalty"`
	Oss      *OssConfig      `json:"oss" yaml:"oss"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
}

type Server struct {
	Http            int           `json:"http" yaml:"http"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load 读取 yaml 配置，再用环境变量（含 .env）覆盖敏感项
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}

	// .env 不存在时忽略
	_ = godotenv.Load()

	conf.applyDefaults()
	conf.applyEnv()
	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.AccessExpire == 0 {
		c.Jwt.AccessExpire = 2 * time.Hour
	}
	if c.Jwt.RefreshExpire == 0 {
		c.Jwt.RefreshExpire = 7 * 24 * time.Hour
	}
	if c.Loyalty == nil {
		c.Loyalty = &Loyalty{}
	}
	c.Loyalty.applyDefaults()
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOREFRONT_MYSQL_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("STOREFRONT_JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("STOREFRONT_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("STOREFRONT_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Http = port
		}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
