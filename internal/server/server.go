// Package server exposes the compiler over JSON-RPC 2.0 so editor and
// agent tooling can lower SIRS documents without shelling out to the CLI.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/commonlog"

	"sever/internal/cir"
	"sever/internal/diag"
	"sever/internal/sirs"
)

// CompileParams carries one SIRS document to lower.
type CompileParams struct {
	// Module names the resulting CIR module. Defaults to "main".
	Module string `json:"module,omitempty"`
	// Source is the SIRS document itself, embedded as JSON.
	Source json.RawMessage `json:"source"`
}

// CompileResult is the outcome of a sever/compile request.
type CompileResult struct {
	CIR         string            `json:"cir,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	OK          bool              `json:"ok"`
}

// CheckResult is the outcome of a sever/check request: diagnostics only,
// no rendered CIR.
type CheckResult struct {
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	OK          bool              `json:"ok"`
}

// Handler serves the sever/* JSON-RPC methods.
type Handler struct {
	log commonlog.Logger
}

// NewHandler creates a handler logging under the given scope.
func NewHandler() *Handler {
	return &Handler{log: commonlog.GetLogger("sever.server")}
}

// Wrap adapts the handler to the jsonrpc2 connection interface.
func (h *Handler) Wrap() jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(h.handle)
}

func (h *Handler) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	h.log.Debugf("request: %s", req.Method)

	switch req.Method {
	case "sever/compile":
		params, err := decodeParams(req)
		if err != nil {
			return nil, err
		}
		return h.compile(params), nil

	case "sever/check":
		params, err := decodeParams(req)
		if err != nil {
			return nil, err
		}
		result := h.compile(params)
		return CheckResult{Diagnostics: result.Diagnostics, OK: result.OK}, nil

	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not found: %s", req.Method),
		}
	}
}

func decodeParams(req *jsonrpc2.Request) (*CompileParams, error) {
	if req.Params == nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	var params CompileParams
	if err := json.Unmarshal(*req.Params, &params); err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	if len(params.Source) == 0 {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing source document"}
	}
	if params.Module == "" {
		params.Module = "main"
	}
	return &params, nil
}

// compile lowers one document. Failures surface as diagnostics in the
// result rather than protocol errors: a program that cannot be lowered
// is a valid answer, not a broken request.
func (h *Handler) compile(params *CompileParams) CompileResult {
	prog, err := sirs.Parse(params.Source)
	if err != nil {
		return CompileResult{
			Diagnostics: []diag.Diagnostic{{Severity: diag.Error, Message: err.Error()}},
		}
	}

	reporter := diag.NewReporter()
	module, err := cir.NewLowering(reporter).Lower(prog, params.Module)
	if err != nil || reporter.HasErrors() {
		h.log.Infof("lowering %s failed: %v", params.Module, err)
		return CompileResult{Diagnostics: reporter.Diagnostics()}
	}

	return CompileResult{
		CIR:         cir.Print(module),
		Diagnostics: reporter.Diagnostics(),
		OK:          true,
	}
}
