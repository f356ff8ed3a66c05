package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig `mapstructure:"postgres"` // PostgreSQL配置
	IGDB     IGDBConfig     `mapstructure:"igdb"`     // IGDB目录服务配置
	Sync     SyncConfig     `mapstructure:"sync"`     // 同步行为配置
	Images   ImagesConfig   `mapstructure:"images"`   // 用户照片存储配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// IGDBConfig IGDB目录服务配置（Twitch OAuth2 + Apicalypse查询协议）
type IGDBConfig struct {
	BaseURL      string `mapstructure:"base_url"`      // API基础地址（https://api.igdb.com/v4）
	TokenURL     string `mapstructure:"token_url"`     // Twitch令牌端点（https://id.twitch.tv/oauth2/token）
	ClientID     string `mapstructure:"client_id"`     // Twitch应用Client ID
	ClientSecret string `mapstructure:"client_secret"` // Twitch应用Client Secret
	Timeout      int    `mapstructure:"timeout"`       // 请求超时（秒）
	RetryCount   int    `mapstructure:"retry_count"`   // 重试上限（429/5xx共用）
	RatePerSec   int    `mapstructure:"rate_per_sec"`  // 限速：每秒请求数（免费档为4）
	Proxy        string `mapstructure:"proxy"`         // 代理地址
}

// SyncConfig 同步行为配置
type SyncConfig struct {
	SearchLimit int `mapstructure:"search_limit"` // 搜索接口返回条数上限
}

// ImagesConfig 用户照片存储配置（本地磁盘 + 静态路由）
type ImagesConfig struct {
	BaseDir string `mapstructure:"base_dir"` // 落盘目录
	BaseURL string `mapstructure:"base_url"` // 对外URL前缀（静态路由挂载点）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	// 4. 兜底默认值
	if cfg.IGDB.RatePerSec <= 0 {
		cfg.IGDB.RatePerSec = 4
	}
	if cfg.IGDB.RetryCount <= 0 {
		cfg.IGDB.RetryCount = 3
	}
	if cfg.Sync.SearchLimit <= 0 {
		cfg.Sync.SearchLimit = 20
	}
	if cfg.Images.BaseDir == "" {
		cfg.Images.BaseDir = "./data/images"
	}
	if cfg.Images.BaseURL == "" {
		cfg.Images.BaseURL = "/static/images"
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("IGDB_CLIENT_ID"); v != "" {
		cfg.IGDB.ClientID = v
	}
	if v := os.Getenv("IGDB_CLIENT_SECRET"); v != "" {
		cfg.IGDB.ClientSecret = v
	}
	if v := os.Getenv("IGDB_PROXY"); v != "" {
		cfg.IGDB.Proxy = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}

// GetGORMConfig 获取PostgreSQL配置（适配GORM）
func (m *PostgresConfig) GetGORMConfig() gorm.Config {
	return gorm.Config{} // 可扩展：添加日志、命名策略等
}
