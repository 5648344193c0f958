package conf

import "time"

type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Log      *Log      `json:"log"`
	Briefing *Briefing `json:"briefing"`
}

type Server struct {
	Http      *HTTP      `json:"http"`
	Grpc      *GRPC      `json:"grpc"`
	RateLimit *RateLimit `json:"rate_limit"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type GRPC struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// RateLimit 接口限流，Rps 为 0 时不限流
type RateLimit struct {
	Rps   float64 `json:"rps"`
	Burst int32   `json:"burst"`
}

// Data 数据源配置，Source 取值 builtin / yaml / database
type Data struct {
	Source   string    `json:"source"`
	File     string    `json:"file"`
	Database *Database `json:"database"`
	Session  *Session  `json:"session"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Session struct {
	Ttl string `json:"ttl"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Briefing struct {
	Enabled     bool         `json:"enabled"`
	Llm         *LLM         `json:"llm"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

const defaultSessionTTL = 30 * time.Minute

// SessionTTL 解析会话过期时间，未配置或非法时使用默认值
func (d *Data) SessionTTL() time.Duration {
	if d == nil || d.Session == nil || d.Session.Ttl == "" {
		return defaultSessionTTL
	}
	ttl, err := time.ParseDuration(d.Session.Ttl)
	if err != nil || ttl <= 0 {
		return defaultSessionTTL
	}
	return ttl
}
