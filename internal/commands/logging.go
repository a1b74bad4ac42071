package commands

import (
	"strings"

	"github.com/goliatone/go-cms-rest/internal/logging"
	"github.com/goliatone/go-cms-rest/pkg/interfaces"
)

const commandModuleRoot = "cms.commands"

// CommandLogger returns the logger for the command handlers of module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
