package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type ProviderConfig struct {
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	APIKey    string `json:"api_key"`
	TimeoutMS int    `json:"timeout_ms"`
}

type ServerConfig struct {
	Addr        string   `json:"addr"`
	CORSOrigins []string `json:"cors_origins"`
}

type AuthConfig struct {
	Secret          string `json:"secret"`
	TokenTTLMinutes int    `json:"token_ttl_minutes"`
}

type StorageConfig struct {
	DBPath string `json:"db_path"`
}

type AgentConfig struct {
	HistoryLimit int `json:"history_limit"`
	MaxToolCalls int `json:"max_tool_calls"`
}

type Config struct {
	Provider ProviderConfig `json:"provider"`
	Server   ServerConfig   `json:"server"`
	Auth     AuthConfig     `json:"auth"`
	Storage  StorageConfig  `json:"storage"`
	Agent    AgentConfig    `json:"agent"`
}

func Default() Config {
	return Config{
		Provider: ProviderConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Model:     "meta-llama/llama-3.3-70b-instruct:free",
			TimeoutMS: 120000,
		},
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		Auth: AuthConfig{
			// Development fallback; override via AURORA_SECRET_KEY in
			// any real deployment.
			Secret:          "aurora-dev-secret-change-me",
			TokenTTLMinutes: 30,
		},
		Storage: StorageConfig{
			DBPath: "./aurora.db",
		},
		Agent: AgentConfig{
			HistoryLimit: 10,
			MaxToolCalls: 16,
		},
	}
}

// Load reads an optional JSON/JSONC config file, then applies AURORA_*
// environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := mergeFromFile(&cfg, path); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", path, err)
	}

	cleaned := stripJSONComments(data)
	var fileCfg struct {
		Provider *ProviderConfig `json:"provider"`
		Server   *ServerConfig   `json:"server"`
		Auth     *AuthConfig     `json:"auth"`
		Storage  *StorageConfig  `json:"storage"`
		Agent    *AgentConfig    `json:"agent"`
	}
	if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if fileCfg.Provider != nil {
		if strings.TrimSpace(fileCfg.Provider.BaseURL) != "" {
			cfg.Provider.BaseURL = fileCfg.Provider.BaseURL
		}
		if strings.TrimSpace(fileCfg.Provider.Model) != "" {
			cfg.Provider.Model = fileCfg.Provider.Model
		}
		if strings.TrimSpace(fileCfg.Provider.APIKey) != "" {
			cfg.Provider.APIKey = fileCfg.Provider.APIKey
		}
		if fileCfg.Provider.TimeoutMS > 0 {
			cfg.Provider.TimeoutMS = fileCfg.Provider.TimeoutMS
		}
	}
	if fileCfg.Server != nil {
		if strings.TrimSpace(fileCfg.Server.Addr) != "" {
			cfg.Server.Addr = fileCfg.Server.Addr
		}
		if len(fileCfg.Server.CORSOrigins) > 0 {
			cfg.Server.CORSOrigins = append([]string(nil), fileCfg.Server.CORSOrigins...)
		}
	}
	if fileCfg.Auth != nil {
		if strings.TrimSpace(fileCfg.Auth.Secret) != "" {
			cfg.Auth.Secret = fileCfg.Auth.Secret
		}
		if fileCfg.Auth.TokenTTLMinutes > 0 {
			cfg.Auth.TokenTTLMinutes = fileCfg.Auth.TokenTTLMinutes
		}
	}
	if fileCfg.Storage != nil {
		if strings.TrimSpace(fileCfg.Storage.DBPath) != "" {
			cfg.Storage.DBPath = fileCfg.Storage.DBPath
		}
	}
	if fileCfg.Agent != nil {
		if fileCfg.Agent.HistoryLimit > 0 {
			cfg.Agent.HistoryLimit = fileCfg.Agent.HistoryLimit
		}
		if fileCfg.Agent.MaxToolCalls > 0 {
			cfg.Agent.MaxToolCalls = fileCfg.Agent.MaxToolCalls
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("AURORA_BASE_URL")); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("AURORA_MODEL")); v != "" {
		cfg.Provider.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("AURORA_API_KEY")); v != "" {
		cfg.Provider.APIKey = v
	} else if v := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("AURORA_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("AURORA_SECRET_KEY")); v != "" {
		cfg.Auth.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv("AURORA_TOKEN_TTL_MINUTES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Auth.TokenTTLMinutes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("AURORA_DB_PATH")); v != "" {
		cfg.Storage.DBPath = v
	}
}

func normalize(cfg *Config) error {
	def := Default()
	if strings.TrimSpace(cfg.Provider.BaseURL) == "" {
		cfg.Provider.BaseURL = def.Provider.BaseURL
	}
	if strings.TrimSpace(cfg.Provider.Model) == "" {
		cfg.Provider.Model = def.Provider.Model
	}
	if cfg.Provider.TimeoutMS <= 0 {
		cfg.Provider.TimeoutMS = def.Provider.TimeoutMS
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = def.Auth.TokenTTLMinutes
	}
	if strings.TrimSpace(cfg.Storage.DBPath) == "" {
		cfg.Storage.DBPath = def.Storage.DBPath
	}
	if cfg.Agent.HistoryLimit <= 0 {
		cfg.Agent.HistoryLimit = def.Agent.HistoryLimit
	}
	if cfg.Agent.MaxToolCalls <= 0 {
		cfg.Agent.MaxToolCalls = def.Agent.MaxToolCalls
	}
	return nil
}

func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
