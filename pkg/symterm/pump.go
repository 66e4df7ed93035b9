package symterm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gitrdm/symterm/pkg/wire"
)

// Pump drives the session meta-protocol (spec.md §6.2) over a single
// io.Reader/io.Writer pair: one line in, one line out, until r reaches EOF.
// It owns no solving logic of its own — every line is handed straight to
// a Session's Handle/Solve/Reset.
type Pump struct {
	sess    *Session
	timeout time.Duration
	log     hclog.Logger
}

// NewPump creates a Pump driving sess, applying timeout to each solve
// request (zero means no deadline).
func NewPump(sess *Session, timeout time.Duration, log hclog.Logger) *Pump {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Pump{sess: sess, timeout: timeout, log: log}
}

// Run reads one JSON request per line from r and writes one JSON response
// per line to w, until r is exhausted or ctx is canceled. A malformed line
// or a poisoned session produces an error response on that line, not a
// fatal Run error — Run only returns non-nil for a transport-level read/
// write failure or ctx cancellation.
func (p *Pump) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(w)

	cmdCount := 0
	p.log.Debug("session opened")
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		resp := p.handleLine(ctx, line, &cmdCount)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("symterm: writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("symterm: reading request: %w", err)
	}
	p.log.Debug("session closed", "commands", cmdCount)
	return nil
}

func (p *Pump) handleLine(ctx context.Context, line []byte, cmdCount *int) wire.Response {
	req, err := wire.DecodeRequest(line)
	if err != nil {
		p.log.Warn("malformed request line", "error", err)
		return wire.ErrorResponse("protocol", err.Error())
	}

	switch req.Op {
	case "cmd":
		*cmdCount++
		if req.Cmd == nil {
			return wire.ErrorResponse("protocol", "cmd op requires a cmd payload")
		}
		if err := p.sess.Handle(*req.Cmd); err != nil {
			p.log.Warn("command rejected", "cmd", req.Cmd.C, "error", err)
			return wire.ErrorResponse(Kind(err), err.Error())
		}
		return wire.Accepted()

	case "solve":
		start := time.Now()
		resp, err := p.sess.Solve(ctx, p.timeout)
		if err != nil {
			p.log.Warn("solve failed", "error", err, "elapsed", time.Since(start))
			return wire.ErrorResponse(Kind(err), err.Error())
		}
		p.log.Info("solve completed", "elapsed", time.Since(start))
		return resp

	case "reset":
		p.sess.Reset()
		*cmdCount = 0
		p.log.Debug("session reset")
		return wire.Accepted()

	default:
		err := fmt.Errorf("%w: unknown op %q", ErrProtocol, req.Op)
		p.log.Warn("unknown op", "op", req.Op)
		return wire.ErrorResponse(Kind(err), err.Error())
	}
}
