package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Gemini struct {
		APIKey         string  `yaml:"api_key"`
		Model          string  `yaml:"model"`
		Temperature    float32 `yaml:"temperature"`
		TimeoutSec     int     `yaml:"timeout_sec"`      // 单次推理超时，单位：秒
		BreakerFails   int     `yaml:"breaker_failures"` // 连续失败多少次后熔断
		BreakerOpenSec int     `yaml:"breaker_open_sec"` // 熔断持续时间，单位：秒
	} `yaml:"gemini"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Driver          string `yaml:"driver"` // mysql / sqlite
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"dsn"`
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Content struct {
		PerTypeLimit        int `yaml:"per_type_limit"`        // 每种内容类型最多取多少条
		DescriptionMaxRunes int `yaml:"description_max_runes"` // 提示词中描述的最大长度
	} `yaml:"content"`
	RateLimit struct {
		Requests  int `yaml:"requests"`   // 推理接口每个窗口允许的请求数
		WindowSec int `yaml:"window_sec"` // 窗口长度，单位：秒
	} `yaml:"rate_limit"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Explorer struct {
		RetryIntervalSec int `yaml:"retry_interval_sec"` // 手动重试最小间隔，单位：秒
		SlotIdleMin      int `yaml:"slot_idle_min"`      // 闲置多久的会话被清理，单位：分钟
	} `yaml:"explorer"`
	Timeouts struct {
		RequestSec  int `yaml:"request_sec"`  // 请求超时，单位：秒
		ResponseSec int `yaml:"response_sec"` // 响应超时，单位：秒
		IdleSec     int `yaml:"idle_sec"`     // 空闲超时，单位：秒
	} `yaml:"timeouts"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
	} `yaml:"scheduler"`
}

// Load 加载配置：.env -> config.yaml -> 环境变量覆盖 -> 默认值
func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	path := os.Getenv("SANCTUARY_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		log.Printf("config: %v, falling back to environment variables", err)
		cfg = &Config{}
	} else {
		log.Printf("Loading configuration from %s", path)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

// LoadFile 只解析yaml文件，不处理环境变量和默认值
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// 数据库用户名和密码
	if v := os.Getenv("DATABASE_USERNAME"); v != "" {
		c.DB.Username = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.DB.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DB.DSN = v
	}

	// Gemini API密钥
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	c.Server.Addr = fmt.Sprintf(":%d", c.Server.Port)

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature <= 0 {
		c.Gemini.Temperature = 0.4
	}
	if c.Gemini.TimeoutSec <= 0 {
		c.Gemini.TimeoutSec = 30
	}
	if c.Gemini.BreakerFails <= 0 {
		c.Gemini.BreakerFails = 5
	}
	if c.Gemini.BreakerOpenSec <= 0 {
		c.Gemini.BreakerOpenSec = 30
	}

	if c.DB.Driver == "" {
		c.DB.Driver = "mysql"
	}
	if c.DB.Charset == "" {
		c.DB.Charset = "utf8mb4"
	}
	// 计算 DB.DSN 字段
	if c.DB.DSN == "" && c.DB.Driver == "mysql" && c.DB.Host != "" {
		parseTime := ""
		if c.DB.ParseTime {
			parseTime = "&parseTime=true"
		}
		c.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			c.DB.Username,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.Database,
			c.DB.Charset,
			parseTime)
	}

	if c.Content.PerTypeLimit <= 0 {
		c.Content.PerTypeLimit = 50
	}
	if c.Content.DescriptionMaxRunes <= 0 {
		c.Content.DescriptionMaxRunes = 400
	}

	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 10
	}
	if c.RateLimit.WindowSec <= 0 {
		c.RateLimit.WindowSec = 60
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	if c.Explorer.RetryIntervalSec <= 0 {
		c.Explorer.RetryIntervalSec = 5
	}
	if c.Explorer.SlotIdleMin <= 0 {
		c.Explorer.SlotIdleMin = 30
	}

	if c.Timeouts.RequestSec <= 0 {
		c.Timeouts.RequestSec = 15
	}
	if c.Timeouts.ResponseSec <= 0 {
		// 响应超时必须大于推理超时，否则长推理会被服务器提前截断
		c.Timeouts.ResponseSec = c.Gemini.TimeoutSec + 15
	}
	if c.Timeouts.IdleSec <= 0 {
		c.Timeouts.IdleSec = 60
	}

	if c.Scheduler.CheckIntervalSec <= 0 {
		c.Scheduler.CheckIntervalSec = 300
	}
}

// Default 返回只包含默认值的配置，主要用于测试
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
