package config

import (
	"encoding/json"
	"path"
	"strings"
	"sync"

	"github.com/go-ini/ini"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
)

const (
	_DEFAULT_CONFIG_FILE  = "sharpbridge.ini"
	_DEFAULT_LOG_LEVEL    = "debug"
	_DEFAULT_CODEPAGE     = 1252
	_DEFAULT_ASSEMBLY_DIR = "mono/lib"
	_DEFAULT_CONFIG_DIR   = "mono/etc"
	_DEFAULT_GAMEMODE_DIR = "gamemode/"
)

var (
	configFilePath = _DEFAULT_CONFIG_FILE
	bridgeConfig   *BridgeConfig
	configLock     sync.Mutex
)

// GameModeConfig defines fields of the [gamemode] section
type GameModeConfig struct {
	Namespace   string
	Class       string
	Dir         string
	SymbolFiles string
}

// RuntimeConfig defines fields of the [runtime] section
type RuntimeConfig struct {
	AssemblyDir string
	ConfigDir   string
	TraceLevel  int
	Codepage    int
}

// BridgeConfig defines the total bridge config file structure
type BridgeConfig struct {
	GameMode      GameModeConfig
	Runtime       RuntimeConfig
	LogLevel      string
	CallTraceFile string
}

// SetConfigFile sets the config file path (sharpbridge.ini by default)
func SetConfigFile(f string) {
	configFilePath = f
}

// GetConfigDir returns the directory of sharpbridge.ini
func GetConfigDir() string {
	dir, _ := path.Split(configFilePath)
	return dir
}

// GetConfigFilePath returns the config file path
func GetConfigFilePath() string {
	return configFilePath
}

// Get returns the total bridge config, reading the config file on first use
func Get() *BridgeConfig {
	configLock.Lock()
	defer configLock.Unlock()
	if bridgeConfig == nil {
		bridgeConfig = readBridgeConfig()
	}
	return bridgeConfig
}

// Reload forces the bridge to reload the whole config
func Reload() *BridgeConfig {
	configLock.Lock()
	bridgeConfig = nil
	configLock.Unlock()

	return Get()
}

// GetGameMode returns the game mode config
func GetGameMode() *GameModeConfig {
	return &Get().GameMode
}

// GetRuntime returns the managed runtime config
func GetRuntime() *RuntimeConfig {
	return &Get().Runtime
}

// DumpPretty format config to string in pretty format
func DumpPretty(cfg interface{}) string {
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(s)
}

func readBridgeConfig() *BridgeConfig {
	config := BridgeConfig{}
	sblog.Infof("Using config file: %s", configFilePath)
	iniFile, err := ini.Load(configFilePath)
	checkConfigError(err, "")

	readGameModeConfig(iniFile.Section("gamemode"), &config.GameMode)
	readRuntimeConfig(iniFile.Section("runtime"), &config.Runtime)

	config.LogLevel = _DEFAULT_LOG_LEVEL
	for _, sec := range iniFile.Sections() {
		secName := strings.ToLower(sec.Name())
		if secName == "default" {
			continue
		}

		if secName == "gamemode" || secName == "runtime" {
			// already read above
		} else if secName == "bridge" {
			readBridgeSection(sec, &config)
		} else {
			sblog.Errorf("unknown section: %s", secName)
		}
	}

	validateConfig(&config)
	return &config
}

func readGameModeConfig(sec *ini.Section, gmc *GameModeConfig) {
	gmc.Dir = _DEFAULT_GAMEMODE_DIR

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "namespace" {
			gmc.Namespace = key.MustString(gmc.Namespace)
		} else if name == "class" {
			gmc.Class = key.MustString(gmc.Class)
		} else if name == "dir" {
			gmc.Dir = key.MustString(gmc.Dir)
		} else if name == "symbol_files" {
			gmc.SymbolFiles = key.MustString(gmc.SymbolFiles)
		} else {
			sblog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readRuntimeConfig(sec *ini.Section, rc *RuntimeConfig) {
	rc.AssemblyDir = _DEFAULT_ASSEMBLY_DIR
	rc.ConfigDir = _DEFAULT_CONFIG_DIR
	rc.TraceLevel = 0
	rc.Codepage = _DEFAULT_CODEPAGE

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "assembly_dir" {
			rc.AssemblyDir = key.MustString(rc.AssemblyDir)
		} else if name == "config_dir" {
			rc.ConfigDir = key.MustString(rc.ConfigDir)
		} else if name == "trace_level" {
			rc.TraceLevel = key.MustInt(rc.TraceLevel)
		} else if name == "codepage" {
			rc.Codepage = key.MustInt(rc.Codepage)
		} else {
			sblog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readBridgeSection(sec *ini.Section, config *BridgeConfig) {
	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "log_level" {
			config.LogLevel = key.MustString(config.LogLevel)
		} else if name == "calltrace_file" {
			config.CallTraceFile = key.MustString(config.CallTraceFile)
		} else {
			sblog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func validateConfig(config *BridgeConfig) {
	if config.GameMode.Namespace == "" {
		sblog.Panicf("namespace is not set in gamemode config")
	}
	if config.GameMode.Class == "" {
		sblog.Panicf("class is not set in gamemode config")
	}
}

func checkConfigError(err error, msg string) {
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		sblog.Panicf("read config error: %s", msg)
	}
}
