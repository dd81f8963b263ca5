package configs

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Enabled   bool   `env:"ENABLED" envDefault:"true"`
	Path      string `env:"PATH" envDefault:"/metrics"`
	Namespace string `env:"NAMESPACE" envDefault:"certsale"`
}
