// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/contentguard/shared"
)

// InMemoryBroker delivers messages inside a single process. It backs single instance
// deployments and tests, PostgreSQLBroker is used once more than one instance runs.
type InMemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[shared.PubSubChannel][]chan map[string]any
	closed      bool
}

func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{subscribers: make(map[shared.PubSubChannel][]chan map[string]any)}
}

func (b *InMemoryBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subscribers[message.GetChannel()] {
		select {
		case ch <- message.GetPayload():
		case <-ctx.Done():
			return ctx.Err()
		default:
			slog.Warn("subscriber channel full, dropping message", "topic", message.GetChannel())
		}
	}
	return nil
}

func (b *InMemoryBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan map[string]any, 100)
	if b.closed {
		close(ch)
		return ch, nil
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch, nil
}

func (b *InMemoryBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
}

// BrokerFactory picks the postgres broker when a pool is available.
func BrokerFactory(pool *pgxpool.Pool) (shared.PubSubBroker, error) {
	if pool == nil {
		slog.Info("no database pool for pub/sub, falling back to in-memory broker")
		return NewInMemoryBroker(), nil
	}
	return NewPostgreSQLBroker(pool)
}
