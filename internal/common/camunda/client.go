package camunda

import (
	"context"
	"fmt"
	"time"

	"storefront-workers/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps a Zeebe client with the connection settings it was opened with.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RequestTimeout         time.Duration
}

// ClientConfigFrom maps the application's camunda section onto a ClientConfig.
func ClientConfigFrom(cfg config.CamundaConfig) *ClientConfig {
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true, // set false and configure TLS outside local setups
		ConnectionTimeout:      10 * time.Second,
		RequestTimeout:         config.GetDuration(cfg.RequestTimeout),
	}
}

// NewClient opens a client and verifies the broker answers a topology request.
func NewClient(cfg *ClientConfig) (*Client, error) {
	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
	defer cancel()

	if _, err := zeebeClient.NewTopologyCommand().Send(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
	}

	return &Client{client: zeebeClient, config: cfg}, nil
}

func (c *Client) Zeebe() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck backs the /ready endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
