package rpc

import (
	"time"

	"github.com/pkg/errors"
	"github.com/powerman/rpc-codec/jsonrpc2"
	log "github.com/sirupsen/logrus"

	cres "github.com/clawnch/ledger/common/result"
	"github.com/clawnch/ledger/ledger/types/result"
)

// invalidParams reports a request the ledger never got to see.
func invalidParams(msg string) error {
	return &jsonrpc2.Error{
		Code:    int(cres.CodeInvalidParams),
		Message: msg,
		Data:    cres.CodeInvalidParams.String(),
	}
}

// toRPCError carries the ledger error code over the wire, so clients can
// tell e.g. an unauthorized caller from an underfunded treasury.
func toRPCError(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	code := result.CodeOf(err)
	return &jsonrpc2.Error{
		Code:    int(code),
		Message: err.Error(),
		Data:    code.String(),
	}
}

// observe converts the error returned by an RPC method and records the call.
// Use as `defer t.observe("Method", &err)()`.
func (t *ClawnchRPCService) observe(method string, err *error) func() {
	start := time.Now()
	return func() {
		*err = toRPCError(*err)
		code := cres.CodeOK
		var rpcErr *jsonrpc2.Error
		if errors.As(*err, &rpcErr) {
			code = cres.ErrorCode(rpcErr.Code)
			logger.WithFields(log.Fields{"method": method, "code": code}).Debug(rpcErr.Message)
		}
		t.metrics.ObserveRPC(ServiceName+"."+method, code, time.Since(start))
	}
}
