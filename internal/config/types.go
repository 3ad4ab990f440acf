package config

// Config is the root configuration for the sandol skill server.
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Skill   SkillConfig   `yaml:"skill,omitempty"`
	Store   StoreConfig   `yaml:"store,omitempty"`
	Skills  SkillsConfig  `yaml:"skills,omitempty"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port            int    `yaml:"port,omitempty"`
	Bind            string `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost  string `yaml:"customBindHost,omitempty"`
	ShutdownTimeout int    `yaml:"shutdownTimeout,omitempty"` // seconds
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}

// SkillConfig controls how skill requests are answered.
type SkillConfig struct {
	// StrictSchema checks every rendered response against the bundled
	// envelope schema before it is sent.
	StrictSchema    bool      `yaml:"strictSchema,omitempty"`
	FallbackMessage string    `yaml:"fallbackMessage,omitempty"`
	Auth            SkillAuth `yaml:"auth,omitempty"`
}

// SkillAuth configures the shared secret Open Builder sends as a custom
// header. An empty token disables the check.
type SkillAuth struct {
	Header string `yaml:"header,omitempty"`
	Token  string `yaml:"token,omitempty"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"` // defaults to <home>/data/sandol.db
}

// SkillsConfig carries bot-specific settings used by the meal skills.
type SkillsConfig struct {
	Blocks BlockIDs `yaml:"blocks,omitempty"`
	// MapURLs maps a restaurant name to its map link.
	MapURLs map[string]string `yaml:"mapUrls,omitempty"`
	// CafeteriaWeb is shown alongside the meal view when set.
	CafeteriaWeb *WebCard `yaml:"cafeteriaWeb,omitempty"`
}

// BlockIDs are the Open Builder block identifiers buttons and quick
// replies jump to.
type BlockIDs struct {
	Confirm           string `yaml:"confirm,omitempty"`
	AddLunchMenu      string `yaml:"addLunchMenu,omitempty"`
	AddDinnerMenu     string `yaml:"addDinnerMenu,omitempty"`
	DeleteMenu        string `yaml:"deleteMenu,omitempty"`
	DeleteMenuItem    string `yaml:"deleteMenuItem,omitempty"`
	DeleteAllMenus    string `yaml:"deleteAllMenus,omitempty"`
	ApproveRestaurant string `yaml:"approveRestaurant,omitempty"`
	DeclineRestaurant string `yaml:"declineRestaurant,omitempty"`
}

// WebCard is a titled link rendered as a text card.
type WebCard struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}
