package server

import (
	"github.com/jyami/userstore/internal/resp"
	"github.com/jyami/userstore/internal/storage"
)

// request carries the arguments of a single command invocation
type request struct {
	args []resp.Value
	repo storage.Repository
}

// arg returns the i-th argument as a string
func (r *request) arg(i int) string {
	return string(r.args[i].String)
}

type command interface {
	execute(req *request) resp.Value
}

type commandFunc func(req *request) resp.Value

func (c commandFunc) execute(req *request) resp.Value {
	return c(req)
}
