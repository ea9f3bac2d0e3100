package server

import (
	"strings"

	"github.com/jyami/userstore/internal/resp"
	"github.com/jyami/userstore/internal/storage"
	"go.uber.org/zap"
)

// Engine dispatches commands to the user repository
type Engine struct {
	commands map[string]command // Registry of available commands (the key is the command name in uppercase)
	repo     storage.Repository
	logger   *zap.Logger
}

// NewEngine initializes the engine and registers the commands
func NewEngine(repo storage.Repository, logger *zap.Logger) *Engine {
	engine := &Engine{
		commands: make(map[string]command),
		repo:     repo,
		logger:   logger,
	}
	engine.registerBasicCommand()

	return engine
}

// register adds a new command to the engine. The command name is uppercase
func (e *Engine) register(name string, cmd command) {
	e.commands[strings.ToUpper(name)] = cmd
}

// registerBasicCommand fills the registry with standard commands
func (e *Engine) registerBasicCommand() {
	e.register("PING", commandFunc(ping))
	e.register("COMMAND", commandFunc(cmd))

	e.register("USER.CREATE", commandFunc(userCreate))
	e.register("USER.GET", commandFunc(userGet))
	e.register("USER.GETBYEMAIL", commandFunc(userGetByEmail))
	e.register("USER.LIST", commandFunc(userList))
	e.register("USER.UPDATE", commandFunc(userUpdate))
	e.register("USER.DEL", commandFunc(userDel))
	e.register("USER.COUNT", commandFunc(userCount))
}

// Execute finds the command by name and executes it with the passed arguments.
// If the command is not found or the arity does not match, returns an error in the RESP format
func (e *Engine) Execute(name string, args []resp.Value) resp.Value {
	name = strings.ToUpper(name)

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", name),
			zap.Int("args_count", len(args)),
		)
	}

	cmd, ok := e.commands[name]
	if !ok {
		return resp.MakeErrorf("ERR", "unknown command '%s'", name)
	}

	if !checkArity(name, len(args)+1) {
		return resp.MakeErrorWrongNumberOfArguments(strings.ToLower(name))
	}

	res := cmd.execute(&request{args: args, repo: e.repo})

	if res.Type == resp.TypeError && e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("command failed", zap.String("cmd", name), zap.String("reply", res.Text()))
	}

	return res
}
