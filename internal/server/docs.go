package server

import (
	"sort"
	"strings"

	"github.com/jyami/userstore/internal/resp"
)

type commandMetadata struct {
	arity int      // Arity includes the command name itself, negative means "at least"
	flags []string // readonly, write, fast
	doc   commandDoc
}

// commandDoc stores a description for the command
type commandDoc struct {
	summary    string
	complexity string
	group      string
}

var commandRegistry = map[string]commandMetadata{
	"PING": {-1, []string{"fast", "stale"}, commandDoc{
		summary:    "Ping the server.",
		complexity: "O(1)",
		group:      "connection",
	}},
	"COMMAND": {-1, []string{"random", "loading", "stale"}, commandDoc{
		summary:    "Get array of command details.",
		complexity: "O(N) where N is the number of commands to look up.",
		group:      "server",
	}},
	"USER.CREATE": {3, []string{"write", "fast"}, commandDoc{
		summary:    "Create a user and return it with its assigned id.",
		complexity: "O(1)",
		group:      "user",
	}},
	"USER.GET": {2, []string{"readonly", "fast"}, commandDoc{
		summary:    "Get a user by id, nil when absent.",
		complexity: "O(1) for hash backends, O(N) for the list backend.",
		group:      "user",
	}},
	"USER.GETBYEMAIL": {2, []string{"readonly"}, commandDoc{
		summary:    "Get the first user with the given email.",
		complexity: "O(N) where N is the number of users.",
		group:      "user",
	}},
	"USER.LIST": {1, []string{"readonly"}, commandDoc{
		summary:    "List all users ordered by id.",
		complexity: "O(N log N) where N is the number of users.",
		group:      "user",
	}},
	"USER.UPDATE": {4, []string{"write", "fast"}, commandDoc{
		summary:    "Replace name and email of a user.",
		complexity: "O(1) for hash backends, O(N) for the list backend.",
		group:      "user",
	}},
	"USER.DEL": {2, []string{"write"}, commandDoc{
		summary:    "Delete a user. Not supported.",
		complexity: "O(1)",
		group:      "user",
	}},
	"USER.COUNT": {1, []string{"readonly", "fast"}, commandDoc{
		summary:    "Return the number of stored users.",
		complexity: "O(1)",
		group:      "user",
	}},
}

// checkArity reports whether argc (command name included) satisfies the registered arity
func checkArity(name string, argc int) bool {
	meta, ok := commandRegistry[name]
	if !ok {
		return true
	}
	if meta.arity < 0 {
		return argc >= -meta.arity
	}
	return argc == meta.arity
}

func makeFlagsArray(flags []string) resp.Value {
	vals := make([]resp.Value, len(flags))
	for i, f := range flags {
		vals[i] = resp.MakeSimpleString(f)
	}
	return resp.MakeArray(vals)
}

func sortedCommandNames() []string {
	names := make([]string, 0, len(commandRegistry))
	for name := range commandRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getAllCommands returns [name, arity, flags] for every command
func getAllCommands() resp.Value {
	names := sortedCommandNames()
	cmdArray := make([]resp.Value, 0, len(names))
	for _, name := range names {
		meta := commandRegistry[name]
		cmdArray = append(cmdArray, resp.MakeArray([]resp.Value{
			resp.MakeBulkString(strings.ToLower(name)),
			resp.MakeInteger(int64(meta.arity)),
			makeFlagsArray(meta.flags),
		}))
	}
	return resp.MakeArray(cmdArray)
}

// getCommandsDocs returns documentation for specified commands or all commands
// Format: [Name, [summary, val, group, val, complexity, val], Name, [...]]
func getCommandsDocs(args []resp.Value) resp.Value {
	var targets []string

	if len(args) == 0 {
		targets = sortedCommandNames()
	} else {
		targets = make([]string, 0, len(args))
		for _, arg := range args {
			targets = append(targets, strings.ToUpper(arg.Text()))
		}
	}

	result := make([]resp.Value, 0, len(targets)*2)

	for _, name := range targets {
		meta, ok := commandRegistry[name]
		if !ok {
			continue
		}

		result = append(result,
			resp.MakeBulkString(strings.ToLower(name)),
			resp.MakeBulkStringArray(
				"summary", meta.doc.summary,
				"group", meta.doc.group,
				"complexity", meta.doc.complexity,
			),
		)
	}

	return resp.MakeArray(result)
}
