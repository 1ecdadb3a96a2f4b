package config

type RocketMQConfig struct {
	Enabled    bool     `yaml:"enabled"`
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`

	// NotifyTopic 通知消息投递的 topic
	NotifyTopic string `yaml:"notify_topic"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
