// 指示: miu200521358
// Package config はkoanfによるプレイヤー設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix は環境変数の接頭辞。区切りは "__" で表す (例: MU_VRMA_PLAYBACK__TIME_SCALE)。
	EnvPrefix = "MU_VRMA_"
	// DefaultFileName は既定の設定ファイル名。
	DefaultFileName = "mu_vrma_player.toml"
)

// Config はプレイヤー設定を表す。
type Config struct {
	General struct {
		Language string `koanf:"language"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"general"`

	Playback struct {
		Autoplay  bool    `koanf:"autoplay"`
		Loop      string  `koanf:"loop"`
		TimeScale float64 `koanf:"time_scale"`
		Weight    float64 `koanf:"weight"`
		FPS       float64 `koanf:"fps"`
	} `koanf:"playback"`

	Retarget struct {
		ReportDuplicates bool `koanf:"report_duplicates"`
	} `koanf:"retarget"`

	Metrics struct {
		Addr string `koanf:"addr"`
	} `koanf:"metrics"`
}

// defaultValues は既定設定値を保持する。
var defaultValues = map[string]interface{}{
	"general.language":           "ja",
	"general.log_level":          "info",
	"playback.autoplay":          true,
	"playback.loop":              "repeat",
	"playback.time_scale":        1.0,
	"playback.weight":            1.0,
	"playback.fps":               60.0,
	"retarget.report_duplicates": true,
	"metrics.addr":               "",
}

// defaultPaths は設定ファイルの既定探索先を保持する。
var defaultPaths = []string{"./" + DefaultFileName, "$HOME/." + DefaultFileName}

// LoadConfig は既定値、TOMLファイル、環境変数の順に設定を読み込む。
func LoadConfig(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues, "."), nil); err != nil {
		return nil, fmt.Errorf("既定設定の読み込みに失敗しました: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	} else {
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
				break
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyToConfigKey), nil); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("設定の展開に失敗しました: %w", err)
	}
	return &cfg, nil
}

// envKeyToConfigKey は環境変数名を設定キーへ変換する。
func envKeyToConfigKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "__", ".", 1)
}

// InitConfig は設定ファイルの雛形を書き出す。
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("設定ファイルが既に存在します: %s", configPath)
	}

	sampleConfig := `# mu_vrma_player 設定

[general]
language = "ja"
log_level = "info"

[playback]
autoplay = true
loop = "repeat"
time_scale = 1.0
weight = 1.0
fps = 60.0

[retarget]
report_duplicates = true

[metrics]
# addr = ":9464"
`
	return os.WriteFile(configPath, []byte(sampleConfig), 0o644)
}

// Validate は設定値を検証する。
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("設定が未指定です")
	}
	switch cfg.General.Language {
	case "ja", "en":
	default:
		return fmt.Errorf("未対応の言語です: %s", cfg.General.Language)
	}
	switch cfg.Playback.Loop {
	case "repeat", "once":
	default:
		return fmt.Errorf("未対応のループ方式です: %s", cfg.Playback.Loop)
	}
	if cfg.Playback.FPS <= 0 {
		return fmt.Errorf("fpsは正の値を指定してください: %f", cfg.Playback.FPS)
	}
	if cfg.Playback.TimeScale < 0 {
		return fmt.Errorf("time_scaleは0以上を指定してください: %f", cfg.Playback.TimeScale)
	}
	if cfg.Playback.Weight < 0 || cfg.Playback.Weight > 1 {
		return fmt.Errorf("weightは0から1の範囲で指定してください: %f", cfg.Playback.Weight)
	}
	return nil
}
