package consts

// Tunable Options
const (
	// For the dispatch bridge
	// BOOTSTRAP_FILTERSCRIPT_COMMAND is the rcon command issued once per process to load the bootstrap filterscript
	BOOTSTRAP_FILTERSCRIPT_COMMAND = "loadfs empty"
	// GAMEMODE_BIN_SUBDIR is the directory under the plugin binary dir where gamemode assemblies live
	GAMEMODE_BIN_SUBDIR = "gamemode"
	// GAMEMODE_ASSEMBLY_EXT is the file extension of the game mode entry assembly
	GAMEMODE_ASSEMBLY_EXT = ".dll"

	// For diagnostics
	// CALLTRACE_MIN_TRACE_LEVEL is the minimal configured trace level that enables the call trace journal
	CALLTRACE_MIN_TRACE_LEVEL = 3
	// OPMON_DUMP_ON_DETACH dumps dispatch operation stats when the plugin detaches
	OPMON_DUMP_ON_DETACH = true
)

// Debug Options
const (
	// DEBUG_PUBLIC_CALLS prints a debug line for every dispatched public call
	DEBUG_PUBLIC_CALLS = false
)
