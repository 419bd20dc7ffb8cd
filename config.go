package mqtt311

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is a file-loadable client configuration. Zero values fall back
// to the documented defaults, so a partial file is fine.
type Settings struct {
	// Host is the broker address.
	Host string `yaml:"host"`

	// Port is the broker port.
	Port uint16 `yaml:"port"`

	// ClientID is the identifier sent in CONNECT.
	ClientID string `yaml:"client_id"`

	// Username and Password are the credentials; an empty user name
	// means none are sent.
	Username string `yaml:"user_name"`
	Password string `yaml:"password"`

	// RetryDelayMS is the retransmission age threshold in milliseconds.
	RetryDelayMS uint32 `yaml:"retry_delay_ms"`

	// RetryAttempts is the retransmission attempt limit.
	RetryAttempts uint32 `yaml:"retry_attempts"`

	// CleanSession sets the CONNECT clean-session flag. Defaults to true
	// when absent.
	CleanSession *bool `yaml:"clean_session"`

	// SendQueueSize is the outbound queue capacity.
	SendQueueSize int `yaml:"send_queue_size"`

	// InflightQueueSize is the in-flight queue capacity.
	InflightQueueSize int `yaml:"inflight_queue_size"`

	// KeepAliveS is the PINGREQ interval in seconds; zero disables.
	KeepAliveS uint16 `yaml:"keep_alive_s"`

	// ReconnectS is the auto-reconnect interval in seconds; zero
	// disables.
	ReconnectS uint16 `yaml:"reconnect_s"`
}

// LoadSettings reads and parses a YAML settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	return ParseSettings(data)
}

// ParseSettings parses YAML settings data.
func ParseSettings(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	return &s, nil
}

// Options converts the settings to client options. Only non-zero fields
// produce an option, so defaults stay in effect for everything else.
func (s *Settings) Options() []Option {
	var opts []Option

	switch {
	case s.Host != "" && s.Port != 0:
		opts = append(opts, WithBroker(s.Host, s.Port))
	case s.Host != "":
		opts = append(opts, WithHost(s.Host))
	case s.Port != 0:
		opts = append(opts, WithBroker(DefaultHost, s.Port))
	}

	if s.ClientID != "" {
		opts = append(opts, WithClientID(s.ClientID))
	}

	if s.Username != "" {
		opts = append(opts, WithCredentials(s.Username, s.Password))
	}

	if s.RetryDelayMS != 0 || s.RetryAttempts != 0 {
		delay := DefaultRetryDelay
		if s.RetryDelayMS != 0 {
			delay = time.Duration(s.RetryDelayMS) * time.Millisecond
		}
		attempts := DefaultRetryAttempts
		if s.RetryAttempts != 0 {
			attempts = int(s.RetryAttempts)
		}
		opts = append(opts, WithRetry(delay, attempts))
	}

	if s.CleanSession != nil {
		opts = append(opts, WithCleanSession(*s.CleanSession))
	}

	if s.SendQueueSize != 0 {
		opts = append(opts, WithSendQueueSize(s.SendQueueSize))
	}

	if s.InflightQueueSize != 0 {
		opts = append(opts, WithInflightQueueSize(s.InflightQueueSize))
	}

	if s.KeepAliveS != 0 {
		opts = append(opts, WithKeepAlive(s.KeepAliveS))
	}

	if s.ReconnectS != 0 {
		opts = append(opts, WithReconnect(s.ReconnectS))
	}

	return opts
}
