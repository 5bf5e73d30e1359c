package config

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env           string `env:"ENV" env-default:"local"`
	AdminUsername string `env:"ADMIN_USERNAME" env-default:"admin"`
	Files         FilesConfig
}

type FilesConfig struct {
	Accounts     string `env:"ACCOUNTS_FILE" env-default:"user.txt"`
	Tasks        string `env:"TASKS_FILE" env-default:"tasks.txt"`
	TaskOverview string `env:"TASK_OVERVIEW_FILE" env-default:"task_overview.txt"`
	UserOverview string `env:"USER_OVERVIEW_FILE" env-default:"user_overview.txt"`
}
