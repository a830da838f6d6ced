package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

const (
	StorageMemory    = "memory"
	StorageFirestore = "firestore"
)

// Keys, also usable as FARUM_<KEY> environment variables.
const (
	KeyMode              = "mode"
	KeyPort              = "port"
	KeyGCPProject        = "gcp_project"
	KeyGCPLocation       = "gcp_location"
	KeyModelName         = "model_name"
	KeyStorageBackend    = "storage_backend"
	KeyUseMockLLM        = "use_mock_llm"
	KeyLogLevel          = "log_level"
	KeySeedOnStart       = "seed_on_start"
	KeyCORSAllowedOrigin = "cors_allowed_origin"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory" o "firestore"
	UseMockLLM     bool   // true = use mock even on GCP

	LogLevel          string
	SeedOnStart       bool
	CORSAllowedOrigin string
}

// NewViper returns a viper instance with defaults and FARUM_ env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FARUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyMode, string(ModeLocal))
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyGCPProject, "")
	v.SetDefault(KeyGCPLocation, "us-central1")
	v.SetDefault(KeyModelName, "gemini-2.5-flash-lite")
	v.SetDefault(KeyStorageBackend, StorageMemory)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySeedOnStart, true)
	v.SetDefault(KeyCORSAllowedOrigin, "*")
	return v
}

// Load builds the config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = NewViper()
	}

	var mode Mode
	switch strings.ToLower(v.GetString(KeyMode)) {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	// The mock is the default locally; on GCP only an explicit setting enables it.
	useMock := mode == ModeLocal
	if v.IsSet(KeyUseMockLLM) {
		useMock = v.GetBool(KeyUseMockLLM)
	}

	cfg := &Config{
		Mode: mode,

		Port: v.GetString(KeyPort),

		GCPProjectID: v.GetString(KeyGCPProject),
		GCPLocation:  v.GetString(KeyGCPLocation),
		ModelName:    v.GetString(KeyModelName),

		StorageBackend: strings.ToLower(v.GetString(KeyStorageBackend)),
		UseMockLLM:     useMock,

		LogLevel:          v.GetString(KeyLogLevel),
		SeedOnStart:       v.GetBool(KeySeedOnStart),
		CORSAllowedOrigin: v.GetString(KeyCORSAllowedOrigin),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		return fmt.Errorf("FARUM_GCP_PROJECT must be set in gcp mode")
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("FARUM_GCP_PROJECT is required for Firestore storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}

	if !c.UseMockLLM && c.GCPProjectID == "" {
		return fmt.Errorf("FARUM_GCP_PROJECT is required for the Vertex plan generator")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
