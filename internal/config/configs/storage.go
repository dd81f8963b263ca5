package configs

// Storage selects where campaigns are persisted: "postgres" or "bolt".
type Storage struct {
	Driver   string `env:"DRIVER" envDefault:"bolt"`
	BoltPath string `env:"BOLT_PATH" envDefault:"data/certsale.db"`
}
