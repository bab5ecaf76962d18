// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"log"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/commonlog"

	"sever/internal/server"
)

// stdrwc adapts the process's standard streams to a single
// ReadWriteCloser so jsonrpc2 can treat them as one connection.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	handler := server.NewHandler()

	log.Println("Starting Sever compiler server on stdio...")

	stream := jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.PlainObjectCodec{})
	conn := jsonrpc2.NewConn(context.Background(), stream, handler.Wrap())

	<-conn.DisconnectNotify()
	log.Println("Connection closed, shutting down")
}
