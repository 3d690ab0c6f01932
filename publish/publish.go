// This file is part of efr32sim.
//
// efr32sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// efr32sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with efr32sim.  If not, see <https://www.gnu.org/licenses/>.

package publish

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/jpillora/backoff"

	"github.com/efr32sim/efr32sim/curated"
	"github.com/efr32sim/efr32sim/hardware"
	"github.com/efr32sim/efr32sim/hardware/memory/bus"
	"github.com/efr32sim/efr32sim/hardware/register"
	"github.com/efr32sim/efr32sim/logger"
)

// Sentinal error patterns.
const (
	ConnectFailed = "publish: cannot connect after %d attempts: %v"
	SendFailed    = "publish: %v"
)

// the number of updates that can be waiting to be sent.
const queueLength = 256

// the maximum number of updates sent before flushing the connection.
const batchLength = 64

// ConnectTimeout is the time allowed for each connection attempt.
const ConnectTimeout = 500 * time.Millisecond

// DialFunc opens a connection to a redis server.
type DialFunc func() (redis.Conn, error)

// Connect calls dial until it succeeds, the number of attempts is used up or
// the context is cancelled. The backoff controls the wait between attempts.
func Connect(ctx context.Context, dial DialFunc, attempts int, b *backoff.Backoff) (redis.Conn, error) {
	var err error

	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return nil, curated.Errorf(ConnectFailed, i, ctx.Err())
		}

		var conn redis.Conn
		conn, err = dial()
		if err == nil {
			return conn, nil
		}

		if i == attempts-1 {
			break
		}

		t := time.NewTimer(b.Duration())
		select {
		case <-ctx.Done():
		case <-t.C:
		}
		t.Stop()
	}

	return nil, curated.Errorf(ConnectFailed, attempts, err)
}

// Dial connects to the redis server at the network address.
func Dial(ctx context.Context, address string, attempts int) (redis.Conn, error) {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: false,
	}
	return Connect(ctx, func() (redis.Conn, error) {
		return redis.Dial("tcp", address, redis.DialConnectTimeout(ConnectTimeout))
	}, attempts, b)
}

type update struct {
	key   string
	value uint32
}

// Publisher observes bus writes and publishes the new register values.
type Publisher struct {
	m    *hardware.Machine
	conn redis.Conn
	hash string

	queue chan update
	done  chan bool

	mu      sync.Mutex
	closed  bool
	dropped int
	sendErr error
}

// NewPublisher is the preferred method of initialisation for the Publisher
// type. The publisher is added as an observer of the machine's bus and the
// connection is owned by the publisher from this point.
func NewPublisher(m *hardware.Machine, conn redis.Conn, hash string) *Publisher {
	p := &Publisher{
		m:     m,
		conn:  conn,
		hash:  hash,
		queue: make(chan update, queueLength),
		done:  make(chan bool),
	}

	go p.service()
	m.Bus.AddObserver(p)

	return p
}

// fail keeps the first error from the connection. Close() returns it.
func (p *Publisher) fail(err error) {
	p.mu.Lock()
	if p.sendErr == nil {
		p.sendErr = err
	}
	p.mu.Unlock()
	logger.Logf(p.m, "publish", "%v", err)
}

func (p *Publisher) send(u update) {
	v := fmt.Sprintf("0x%08x", u.value)
	if err := p.conn.Send("HSET", p.hash, u.key, v); err != nil {
		p.fail(err)
		return
	}
	if err := p.conn.Send("PUBLISH", p.hash, fmt.Sprintf("%s: %s", u.key, v)); err != nil {
		p.fail(err)
	}
}

func (p *Publisher) flush() {
	if _, err := p.conn.Do(""); err != nil {
		p.fail(err)
	}
}

func (p *Publisher) service() {
	defer func() {
		p.done <- true
	}()

	for {
		u, ok := <-p.queue
		if !ok {
			return
		}
		p.send(u)

	drain:
		for n := 1; n < batchLength; n++ {
			select {
			case u, ok = <-p.queue:
				if !ok {
					p.flush()
					return
				}
				p.send(u)
			default:
				break drain
			}
		}

		p.flush()
	}
}

func (p *Publisher) enqueue(u update) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	select {
	case p.queue <- u:
	default:
		p.dropped++
	}
}

// Observe implements the bus.Observer interface. Writes to registers are
// queued for publishing. Writes to memory are ignored.
func (p *Publisher) Observe(ev bus.Event) {
	if !ev.Write {
		return
	}

	r, alias, err := p.m.Register(ev.Address)
	if err != nil {
		return
	}

	// the value published is the value of the register after the write,
	// which differs from the written value for alias writes
	base := ev.Address - uint32(alias)*register.AliasStride
	v, err := p.m.Bus.Peek(base)
	if err != nil {
		return
	}

	p.enqueue(update{
		key:   fmt.Sprintf("%s.%s", ev.Label, r.Name),
		value: v,
	})
}

// Snapshot queues every register of the machine for publishing.
func (p *Publisher) Snapshot() {
	for _, ri := range p.m.RegisterMap() {
		v, err := p.m.Bus.Peek(ri.Address)
		if err != nil {
			continue
		}
		p.enqueue(update{
			key:   fmt.Sprintf("%s.%s", ri.Label, ri.Register.Name),
			value: v,
		})
	}
}

// Close stops the publisher and closes the connection. Updates already
// queued are sent first.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done

	if p.dropped > 0 {
		logger.Logf(p.m, "publish", "%d updates dropped", p.dropped)
	}

	err := p.conn.Close()

	if p.sendErr != nil {
		return curated.Errorf(SendFailed, p.sendErr)
	}
	if err != nil {
		return curated.Errorf(SendFailed, err)
	}

	return nil
}

// Dropped returns the number of updates that were not published because the
// queue was full.
func (p *Publisher) Dropped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}
