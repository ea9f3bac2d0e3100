package server

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/jyami/userstore/internal/resp"
	"github.com/jyami/userstore/internal/storage"
)

// storageErrorReply translates repository errors into RESP errors with a stable prefix
func storageErrorReply(err error) resp.Value {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return resp.MakeErrorf("NOTFOUND", "%s", err)
	case errors.Is(err, storage.ErrUnsupported):
		return resp.MakeErrorf("UNSUPPORTED", "%s", err)
	default:
		return resp.MakeErrorf("ERR", "%s", err)
	}
}

func errNotInteger() resp.Value {
	return resp.MakeError("ERR value is not an integer or out of range")
}

// userReply renders a user as a flat field/value array, the layout of HGETALL
func userReply(u storage.User) resp.Value {
	return resp.MakeBulkStringArray(
		"id", strconv.FormatInt(u.ID, 10),
		"name", u.Name,
		"email", u.Email,
	)
}

func ping(req *request) resp.Value {
	if len(req.args) > 1 {
		return resp.MakeErrorWrongNumberOfArguments("ping")
	}
	if len(req.args) == 1 {
		return resp.MakeBulkString(req.arg(0))
	}
	return resp.MakeSimpleString("PONG")
}

func cmd(req *request) resp.Value {
	if len(req.args) == 0 {
		return getAllCommands()
	}

	switch strings.ToUpper(req.arg(0)) {
	case "COUNT":
		return resp.MakeInteger(int64(len(commandRegistry)))
	case "DOCS":
		return getCommandsDocs(req.args[1:])
	default:
		return resp.MakeErrorf("ERR", "unknown subcommand '%s'", req.arg(0))
	}
}

func userCreate(req *request) resp.Value {
	u := req.repo.Create(storage.Attributes{Name: req.arg(0), Email: req.arg(1)})
	return userReply(u)
}

func userGet(req *request) resp.Value {
	id, err := strconv.ParseInt(req.arg(0), 10, 64)
	if err != nil {
		return errNotInteger()
	}

	u, ok := req.repo.FindByID(id)
	if !ok {
		return resp.MakeNilBulkString()
	}
	return userReply(u)
}

func userGetByEmail(req *request) resp.Value {
	u, err := req.repo.FindByEmail(req.arg(0))
	if err != nil {
		return storageErrorReply(err)
	}
	return userReply(u)
}

func userList(req *request) resp.Value {
	users := req.repo.FindAll()
	slices.SortFunc(users, func(a, b storage.User) int {
		return cmp.Compare(a.ID, b.ID)
	})

	vals := make([]resp.Value, len(users))
	for i, u := range users {
		vals[i] = userReply(u)
	}
	return resp.MakeArray(vals)
}

func userUpdate(req *request) resp.Value {
	id, err := strconv.ParseInt(req.arg(0), 10, 64)
	if err != nil {
		return errNotInteger()
	}

	if err := req.repo.Update(id, storage.Attributes{Name: req.arg(1), Email: req.arg(2)}); err != nil {
		return storageErrorReply(err)
	}
	return resp.MakeOK()
}

func userDel(req *request) resp.Value {
	// every id is rejected, a malformed one included
	id, _ := strconv.ParseInt(req.arg(0), 10, 64) //nolint:errcheck

	if err := req.repo.Delete(id); err != nil {
		return storageErrorReply(err)
	}
	return resp.MakeInteger(1)
}

func userCount(req *request) resp.Value {
	return resp.MakeInteger(int64(req.repo.Len()))
}
