package config

type Postgres struct {
	URL string `koanf:"url"`

	MaxOpenConns int `koanf:"max_open_conns"`
	MaxIdleConns int `koanf:"max_idle_conns"`
}

type HttpServer struct {
	Address string `koanf:"address"`
}
