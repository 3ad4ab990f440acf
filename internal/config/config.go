package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// DefaultFallbackMessage is sent when a skill fails.
const DefaultFallbackMessage = "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요."

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8000,
			Bind:            "loopback",
			ShutdownTimeout: 10,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
		Skill: SkillConfig{
			FallbackMessage: DefaultFallbackMessage,
			Auth: SkillAuth{
				Header: "X-Sandol-Token",
			},
		},
		Skills: SkillsConfig{
			Blocks: BlockIDs{
				Confirm:           "6721838c369c0a05baca37a1",
				AddLunchMenu:      "672181220b8411112c75c884",
				AddDinnerMenu:     "672181305e0ed128077abf5e",
				DeleteMenu:        "67218142369c0a05baca376c",
				DeleteMenuItem:    "67218366770f3e5a431708ac",
				DeleteAllMenus:    "6721837657cc8a7ef53213ef",
				ApproveRestaurant: "673ab011bdae5e01db2d959d",
				DeclineRestaurant: "673ab1fb72ca387abe6381b7",
			},
		},
	}
}
