package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Addr           string        `yaml:"addr"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	AuthProvider   string        `yaml:"auth_provider"` // "local" or "supabase"
	Storage        string        `yaml:"storage"`       // "pg" or "memory" (memory is non-persistent, dev only)
	JwtTTL         time.Duration `yaml:"jwt_ttl"`       // local provider token lifetime

	DefaultAnswerLimit  int           `yaml:"default_answer_limit"`  // answers accepted per question unless the author set a limit
	MaxQuestionTags     int           `yaml:"max_question_tags"`     // tags allowed on a single question
	SimilarLimit        int           `yaml:"similar_limit"`         // questions returned by the similarity lookup
	CommunityRetention  int           `yaml:"community_retention"`   // messages kept per country, oldest evicted first
	CommunityPostWindow time.Duration `yaml:"community_post_window"` // one post per user per country within this window
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Supabase struct {
	URL            string `yaml:"url"`
	ServiceRoleKey string `yaml:"service_role_key"`
}

type Private struct {
	JwtKey   string   `yaml:"jwt_key"`
	Pg       Pg       `yaml:"pg"`
	Supabase Supabase `yaml:"supabase"`
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (s *Config) Pg() Pg {
	return s.private.Pg
}

func (s *Config) Supabase() Supabase {
	return s.private.Supabase
}

// Defaults returns a Public config with the application defaults filled in.
// Tests use it directly; MustLoad applies it under loaded values.
func Defaults() Public {
	return Public{
		Addr:                ":8080",
		LogLevel:            "info",
		AuthProvider:        "local",
		Storage:             "pg",
		JwtTTL:              24 * time.Hour,
		DefaultAnswerLimit:  3,
		MaxQuestionTags:     5,
		SimilarLimit:        10,
		CommunityRetention:  100,
		CommunityPostWindow: 7 * 24 * time.Hour,
	}
}

func (p *Public) applyDefaults() {
	d := Defaults()
	if p.Addr == "" {
		p.Addr = d.Addr
	}
	if p.LogLevel == "" {
		p.LogLevel = d.LogLevel
	}
	if p.AuthProvider == "" {
		p.AuthProvider = d.AuthProvider
	}
	if p.Storage == "" {
		p.Storage = d.Storage
	}
	if p.JwtTTL == 0 {
		p.JwtTTL = d.JwtTTL
	}
	if p.DefaultAnswerLimit == 0 {
		p.DefaultAnswerLimit = d.DefaultAnswerLimit
	}
	if p.MaxQuestionTags == 0 {
		p.MaxQuestionTags = d.MaxQuestionTags
	}
	if p.SimilarLimit == 0 {
		p.SimilarLimit = d.SimilarLimit
	}
	if p.CommunityRetention == 0 {
		p.CommunityRetention = d.CommunityRetention
	}
	if p.CommunityPostWindow == 0 {
		p.CommunityPostWindow = d.CommunityPostWindow
	}
}

func (s *Config) validate() {
	switch s.Public.AuthProvider {
	case "local":
		if s.private.JwtKey == "" {
			panic("config: jwt_key is required with auth_provider: local")
		}
	case "supabase":
		if s.private.Supabase.URL == "" || s.private.Supabase.ServiceRoleKey == "" {
			panic("config: supabase url and service_role_key are required with auth_provider: supabase")
		}
	default:
		panic(fmt.Sprintf("config: unknown auth_provider %q", s.Public.AuthProvider))
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.validate()
	return cfg
}
