package cons

const (
	ConfigFile         = "config.json"
	RunMapFile         = "ba_run_post_map.json"
	DefaultDataDir     = "data"
	LogDir             = "logs"
	MaxDiscordAttempts = 50

	DefaultSaveInterval = 60 // minutes
	DefaultNatsPrefix   = "raidkeeper."

	/* Parallel run loads and member lookups */
	ThreadCount = 8
)
