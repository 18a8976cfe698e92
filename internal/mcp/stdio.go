package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/smsactivate/mcp-sms-activate/internal/protocol"
)

const maxLineSize = 10 << 20

// RunStdio serves newline-delimited JSON-RPC from in and writes responses to out.
// Up to maxConcurrent requests are handled at once; responses may therefore be
// written out of request order. A line over maxLineSize is answered with an
// invalid-request error and skipped. It returns nil when in reaches EOF.
func RunStdio(ctx context.Context, server *Server, in io.Reader, out io.Writer, maxConcurrent int) error {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	var mu sync.Mutex
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	write := func(resp protocol.Response) error {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		return nil
	}

	reader := bufio.NewReaderSize(in, 64*1024)

	for gctx.Err() == nil {
		line, tooLong, err := readLine(reader, maxLineSize)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			_ = g.Wait()
			return fmt.Errorf("read input: %w", err)
		}
		if tooLong {
			msg := fmt.Sprintf("request exceeds %d bytes", maxLineSize)
			if werr := write(WriteError(nil, protocol.CodeInvalidRequest, msg, nil)); werr != nil {
				return werr
			}
			continue
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if werr := write(WriteError(nil, protocol.CodeParseError, "parse error", err)); werr != nil {
				return werr
			}
			continue
		}

		g.Go(func() error {
			resp, ok := server.Handle(gctx, req)
			if !ok {
				return nil
			}
			return write(resp)
		})
	}

	return g.Wait()
}

// readLine returns the next newline-terminated line. A line longer than limit is
// consumed and dropped, and tooLong is reported instead.
func readLine(r *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}
