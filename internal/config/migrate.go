package config

// Migrate configures the catalog-migrate command.
type Migrate struct {
	// Command is the goose command to run: up, down, status, reset or version.
	Command string `env:"MIGRATE_COMMAND" envDefault:"up"`
}
