package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
	"functions": {
		"main": {
			"params": [],
			"return": {"kind": "i32"},
			"body": [
				{"kind": "return", "value": {"kind": "literal", "type": "int", "value": 7}}
			]
		}
	}
}`

func request(t *testing.T, method string, params interface{}) *jsonrpc2.Request {
	t.Helper()
	req := &jsonrpc2.Request{Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		msg := json.RawMessage(raw)
		req.Params = &msg
	}
	return req
}

func TestCompileValidDocument(t *testing.T) {
	h := NewHandler()
	result, err := h.handle(context.Background(), nil, request(t, "sever/compile", CompileParams{
		Module: "demo",
		Source: json.RawMessage(validDocument),
	}))
	require.NoError(t, err)

	compiled, ok := result.(CompileResult)
	require.True(t, ok)
	assert.True(t, compiled.OK)
	assert.Empty(t, compiled.Diagnostics)
	assert.Contains(t, compiled.CIR, "MODULE demo (CIR)")
	assert.Contains(t, compiled.CIR, "FUNCTION main() -> i32:")
}

func TestCompileDefaultsModuleName(t *testing.T) {
	h := NewHandler()
	result, err := h.handle(context.Background(), nil, request(t, "sever/compile", CompileParams{
		Source: json.RawMessage(validDocument),
	}))
	require.NoError(t, err)
	assert.Contains(t, result.(CompileResult).CIR, "MODULE main (CIR)")
}

func TestCompileReportsLoweringDiagnostics(t *testing.T) {
	document := strings.Replace(validDocument, `"kind": "literal", "type": "int", "value": 7`,
		`"kind": "variable", "name": "ghost"`, 1)

	h := NewHandler()
	result, err := h.handle(context.Background(), nil, request(t, "sever/compile", CompileParams{
		Source: json.RawMessage(document),
	}))
	require.NoError(t, err)

	compiled := result.(CompileResult)
	assert.False(t, compiled.OK)
	assert.Empty(t, compiled.CIR)
	require.NotEmpty(t, compiled.Diagnostics)
	assert.Contains(t, compiled.Diagnostics[0].Message, "undefined variable ghost")
}

func TestCompileReportsDecodeErrors(t *testing.T) {
	h := NewHandler()
	result, err := h.handle(context.Background(), nil, request(t, "sever/compile", CompileParams{
		Source: json.RawMessage(`{"functions": {"f": {"params": [], "body": [{"kind": "goto"}]}}}`),
	}))
	require.NoError(t, err)

	compiled := result.(CompileResult)
	assert.False(t, compiled.OK)
	require.Len(t, compiled.Diagnostics, 1)
	assert.Contains(t, compiled.Diagnostics[0].Message, "unknown statement kind")
}

func TestCheckOmitsCIR(t *testing.T) {
	h := NewHandler()
	result, err := h.handle(context.Background(), nil, request(t, "sever/check", CompileParams{
		Source: json.RawMessage(validDocument),
	}))
	require.NoError(t, err)

	checked, ok := result.(CheckResult)
	require.True(t, ok)
	assert.True(t, checked.OK)
}

func TestUnknownMethod(t *testing.T) {
	h := NewHandler()
	_, err := h.handle(context.Background(), nil, request(t, "sever/optimize", nil))
	require.Error(t, err)

	rpcErr, ok := err.(*jsonrpc2.Error)
	require.True(t, ok)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)
}

func TestMissingParams(t *testing.T) {
	h := NewHandler()
	_, err := h.handle(context.Background(), nil, request(t, "sever/compile", nil))
	require.Error(t, err)

	rpcErr, ok := err.(*jsonrpc2.Error)
	require.True(t, ok)
	assert.Equal(t, int64(jsonrpc2.CodeInvalidParams), rpcErr.Code)
}

func TestMissingSource(t *testing.T) {
	h := NewHandler()
	_, err := h.handle(context.Background(), nil, request(t, "sever/compile", CompileParams{Module: "m"}))
	require.Error(t, err)

	rpcErr, ok := err.(*jsonrpc2.Error)
	require.True(t, ok)
	assert.Equal(t, jsonrpc2.CodeInvalidParams, rpcErr.Code)
}
