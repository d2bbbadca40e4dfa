package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL               time.Duration `yaml:"jwt_ttl"`
	MaxAttachmentSize    int64         `yaml:"max_attachment_size"`     // bytes, upper bound for a single attachment
	MessagesPerPage      int           `yaml:"messages_per_page"`       // default page size for message history
	MessagesPerPageLimit int           `yaml:"messages_per_page_limit"` // hard cap a client may request
	AllowedOrigins       []string      `yaml:"allowed_origins"`
	LogLevel             string        `yaml:"log_level"`
	LogJSON              bool          `yaml:"log_json"`
	Ws                   Ws            `yaml:"ws"`
}

type Ws struct {
	ReadLimit    int64         `yaml:"read_limit"` // max inbound frame size, bytes
	WriteWait    time.Duration `yaml:"write_wait"`
	PongWait     time.Duration `yaml:"pong_wait"`
	PingInterval time.Duration `yaml:"ping_interval"`
	SendBuffer   int           `yaml:"send_buffer"` // outbound queue length per connection
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
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

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (s *Config) applyDefaults() {
	if s.Public.MaxAttachmentSize == 0 {
		s.Public.MaxAttachmentSize = 20 << 20
	}
	if s.Public.MessagesPerPage == 0 {
		s.Public.MessagesPerPage = 50
	}
	if s.Public.MessagesPerPageLimit == 0 {
		s.Public.MessagesPerPageLimit = 200
	}
	if s.Public.Ws.ReadLimit == 0 {
		s.Public.Ws.ReadLimit = 64 << 10
	}
	if s.Public.Ws.WriteWait == 0 {
		s.Public.Ws.WriteWait = 10 * time.Second
	}
	if s.Public.Ws.PongWait == 0 {
		s.Public.Ws.PongWait = 60 * time.Second
	}
	if s.Public.Ws.PingInterval == 0 {
		s.Public.Ws.PingInterval = 30 * time.Second
	}
	if s.Public.Ws.SendBuffer == 0 {
		s.Public.Ws.SendBuffer = 128
	}
}
