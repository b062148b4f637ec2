package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo 服務名稱與路徑 from .env
type EnvInfo struct {
	Env string

	// service name
	Console    string
	MockServer string

	// service yaml path
	ConsoleYAMLPath    string
	MockServerYAMLPath string

	// service log path
	ConsoleLogPath    string
	MockServerLogPath string
}

// EnvConfig 集合服務設定
var (
	EnvConfig = initEnv()
	envConfig EnvInfo
	once      sync.Once
)

func initEnv() EnvInfo {
	once.Do(func() {
		path, err := GetPath(".env", 5)
		if err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Printf("Warning: Could not load .env file: %v", err)
			}
		}

		envConfig = EnvInfo{
			Env: os.Getenv("ENV"),

			Console:    getEnv("CONSOLE_SERVICE", "console"),
			MockServer: getEnv("MOCK_SERVER_SERVICE", "mock_server"),

			ConsoleYAMLPath:    getEnv("CONSOLE_YAML", "./configs"),
			MockServerYAMLPath: getEnv("MOCK_SERVER_YAML", "./configs"),

			ConsoleLogPath:    os.Getenv("CONSOLE_LOG"),
			MockServerLogPath: os.Getenv("MOCK_SERVER_LOG"),
		}
	})

	return envConfig
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// IsProduction check run env
func IsProduction() bool {
	return EnvConfig.Env == "production"
}

// IsLocal check run env
func IsLocal() bool {
	return EnvConfig.Env == "local"
}

// LoadConfig 加載配置
// 找不到 yaml 時只使用 defaults 與環境變數；yaml 內的 ${} 以環境變數展開。
func LoadConfig[T any](serviceName, configPath string, defaults map[string]any) (T, error) {
	var cfg T

	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 自動讀取環境變數 server.base_url -> SERVER_BASE_URL
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("load config %s: %w", serviceName, err)
		}
	} else {
		rawConfig, err := os.ReadFile(v.ConfigFileUsed())
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}

		// 替換 ${} 占位符為環境變數的值
		expandedConfig := os.ExpandEnv(string(rawConfig))
		if err := v.ReadConfig(bytes.NewBufferString(expandedConfig)); err != nil {
			return cfg, fmt.Errorf("read expanded config %s: %w", serviceName, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config %s: %w", serviceName, err)
	}
	return cfg, nil
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + " can't find path")
}
