package config

import "time"

// DefaultServerURL 本地 mock server
const DefaultServerURL = "http://127.0.0.1:5000"

// Console definition console YAML structure
type Console struct {
	Server  ServerConfig  `mapstructure:"server"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MockServer definition mock_server YAML structure
type MockServer struct {
	Port   string       `mapstructure:"port"`
	Pprof  string       `mapstructure:"pprof"`
	Log    LogConfig    `mapstructure:"log"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// ServerURL yaml 的 ${} 展開為空時回到預設位置
func (c Console) ServerURL() string {
	if c.Server.BaseURL == "" {
		return DefaultServerURL
	}
	return c.Server.BaseURL
}

// ServerConfig 後端 API 位置
type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RefreshConfig 聊天室列表自動刷新
type RefreshConfig struct {
	ChatroomInterval time.Duration `mapstructure:"chatroom_interval"`
}

// LogConfig log setting
type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Debug bool   `mapstructure:"debug"`
}

// MetricsConfig prometheus endpoint, 空字串表示不啟用
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// OpenAIConfig mock server 產生 AI 建議回覆用
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// ConsoleDefaults console 預設值
func ConsoleDefaults() map[string]any {
	return map[string]any{
		"server.base_url":           DefaultServerURL,
		"server.timeout":            10 * time.Second,
		"refresh.chatroom_interval": 30 * time.Second,
		"log.dir":                   "",
		"log.debug":                 false,
		"metrics.addr":              "",
	}
}

// MockServerDefaults mock server 預設值
func MockServerDefaults() map[string]any {
	return map[string]any{
		"port":         "5000",
		"pprof":        "",
		"log.dir":      "",
		"openai.model": "gpt-4o-mini",
	}
}
