package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/zhouzirui/quote-chat/internal/logging"
)

const (
	defaultPort        = "8080"
	defaultBackendURL  = "http://localhost:8000"
	defaultGatewayURL  = "http://localhost:8080"
	defaultCORSOrigins = "http://localhost:3000"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Log     LogConfig
	Client  ClientConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	backend, err := loadBackendConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Backend: backend, Log: logCfg, Client: client}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// loadServerConfig 解析服务器监听地址与允许的浏览器来源。
func loadServerConfig() (ServerConfig, error) {
	port := getEnvOrDefault("PORT", defaultPort)

	var addr string
	switch {
	case strings.Contains(port, ":"):
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		addr = port
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	default:
		addr = ":" + port
	}

	return ServerConfig{
		Addr:        addr,
		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", defaultCORSOrigins)),
	}, nil
}

// BackendConfig 描述上游对话服务。
type BackendConfig struct {
	BaseURL string
	// Timeout bounds each upstream call; zero means no timeout.
	Timeout time.Duration
}

func loadBackendConfig() (BackendConfig, error) {
	base := getEnvOrDefault("BACKEND_URL", getEnvOrDefault("NEXT_PUBLIC_BACKEND_URL", defaultBackendURL))
	if err := validateURL("BACKEND_URL", base); err != nil {
		return BackendConfig{}, err
	}

	timeout, err := parseOptionalDurationEnv("BACKEND_TIMEOUT")
	if err != nil {
		return BackendConfig{}, err
	}

	cfg := BackendConfig{BaseURL: base}
	if timeout != nil {
		if *timeout < 0 {
			return BackendConfig{}, fmt.Errorf("invalid BACKEND_TIMEOUT value %q: must not be negative", timeout.String())
		}
		cfg.Timeout = *timeout
	}
	return cfg, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() (LogConfig, error) {
	cfg := LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", logging.FormatConsole)),
	}
	if _, err := logging.ParseLevel(cfg.Level); err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.Format != logging.FormatConsole && cfg.Format != logging.FormatJSON {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q", cfg.Format)
	}
	return cfg, nil
}

// ClientConfig 描述终端客户端连接的网关。
type ClientConfig struct {
	GatewayURL string
}

// LoadClient 只加载终端客户端所需的配置，网关侧的变量不参与校验。
func LoadClient() (ClientConfig, error) {
	return loadClientConfig()
}

func loadClientConfig() (ClientConfig, error) {
	gw := getEnvOrDefault("GATEWAY_URL", defaultGatewayURL)
	if err := validateURL("GATEWAY_URL", gw); err != nil {
		return ClientConfig{}, err
	}
	return ClientConfig{GatewayURL: gw}, nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s value %q: scheme must be http or https", key, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s value %q: missing host", key, raw)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
