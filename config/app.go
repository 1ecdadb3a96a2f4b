package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// CodeSalt 券码、订单短码的 hashids 盐
	CodeSalt string `json:"code_salt" yaml:"code_salt"`
	NodeID   int64  `json:"node_id" yaml:"node_id"`
}
