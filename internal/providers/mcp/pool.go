package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
)

type ManagedClient struct {
	*client.Client
	mu     sync.RWMutex
	closed bool
	name   string
}

func (mc *ManagedClient) Close() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.closed {
		return nil
	}
	mc.closed = true
	if mc.Client == nil {
		return nil
	}
	return mc.Client.Close()
}

func (mc *ManagedClient) IsClosed() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.closed
}

type ConnectionPool interface {
	Add(ctx context.Context, name string, cfg ServerConfig) (*ManagedClient, error)
	Get(name string) (*ManagedClient, bool)
	All() map[string]*ManagedClient
	Close() error
}

var _ ConnectionPool = (*Pool)(nil)

type TransportFactory func(TransportType) (Transport, error)

type Pool struct {
	mu               sync.RWMutex
	clients          map[string]*ManagedClient
	transportFactory TransportFactory
}

func NewPool() *Pool {
	return NewPoolWithFactory(NewTransport)
}

func NewPoolWithFactory(factory TransportFactory) *Pool {
	return &Pool{
		clients:          make(map[string]*ManagedClient),
		transportFactory: factory,
	}
}

func (p *Pool) Add(ctx context.Context, name string, cfg ServerConfig) (*ManagedClient, error) {
	tType, err := cfg.GetTransport()
	if err != nil {
		return nil, err
	}

	transport, err := p.transportFactory(tType)
	if err != nil {
		return nil, err
	}

	cli, err := transport(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("transport creation failed: %w", err)
	}

	managed := &ManagedClient{
		Client: cli,
		name:   name,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if old, exists := p.clients[name]; exists {
		go old.Close()
	}

	p.clients[name] = managed
	return managed, nil
}

func (p *Pool) Get(name string) (*ManagedClient, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cli, ok := p.clients[name]
	return cli, ok
}

func (p *Pool) All() map[string]*ManagedClient {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(map[string]*ManagedClient, len(p.clients))
	for k, v := range p.clients {
		result[k] = v
	}
	return result
}

func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, cli := range p.clients {
		if err := cli.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.clients = make(map[string]*ManagedClient)

	return errors.Join(errs...)
}
