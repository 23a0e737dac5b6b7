package rabbitmq_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"deliveryhub/internal/adapters/out/rabbitmq"
	"deliveryhub/internal/core/application/fanout"
	"deliveryhub/internal/core/domain/model/channel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type received struct {
	channel channel.Channel
	msg     fanout.Message
}

type recordingSink struct {
	mu       sync.Mutex
	messages []received
}

func (s *recordingSink) Deliver(_ context.Context, ch channel.Channel, msg fanout.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, received{channel: ch, msg: msg})
	return nil
}

func (s *recordingSink) snapshot() []received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]received(nil), s.messages...)
}

type RelayIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	url       string
	logger    *slog.Logger
}

func (suite *RelayIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	suite.Require().NoError(err)

	suite.url = fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *RelayIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *RelayIntegrationTestSuite) dial(exchange string) *rabbitmq.Relay {
	relay, err := rabbitmq.Dial(suite.url, exchange, suite.logger)
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = relay.Close() })
	return relay
}

func (suite *RelayIntegrationTestSuite) consume(relay *rabbitmq.Relay, sink fanout.Bus) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = relay.Consume(ctx, sink)
	}()
	suite.T().Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func (suite *RelayIntegrationTestSuite) TestEveryInstanceReceivesEveryMessageInOrder() {
	const exchange = "order-events-ordering"
	publisher := suite.dial(exchange)
	other := suite.dial(exchange)

	local := &recordingSink{}
	remote := &recordingSink{}
	suite.consume(publisher, local)
	suite.consume(other, remote)

	// Give both consumers time to bind their queues.
	time.Sleep(500 * time.Millisecond)

	ctx := context.Background()
	for v := 1; v <= 5; v++ {
		err := publisher.Deliver(ctx, channel.Admin, fanout.Message{
			OrderID: "o1",
			Version: v,
			Payload: []byte(fmt.Sprintf(`{"version":%d}`, v)),
		})
		suite.Require().NoError(err)
	}

	for _, sink := range []*recordingSink{local, remote} {
		suite.Require().Eventually(func() bool { return len(sink.snapshot()) == 5 },
			10*time.Second, 50*time.Millisecond)

		for i, r := range sink.snapshot() {
			suite.Equal(channel.Admin, r.channel)
			suite.Equal("o1", r.msg.OrderID)
			suite.Equal(i+1, r.msg.Version)
			suite.JSONEq(fmt.Sprintf(`{"version":%d}`, i+1), string(r.msg.Payload))
		}
	}
}

func (suite *RelayIntegrationTestSuite) TestDeliverAfterCloseFails() {
	relay := suite.dial("order-events-closed")
	suite.Require().NoError(relay.Close())

	err := relay.Deliver(context.Background(), channel.Admin, fanout.Message{OrderID: "o1", Version: 1})
	suite.Require().ErrorIs(err, rabbitmq.ErrRelayClosed)
}

func (suite *RelayIntegrationTestSuite) TestConsumeReturnsOnClose() {
	relay := suite.dial("order-events-shutdown")

	done := make(chan error, 1)
	go func() { done <- relay.Consume(context.Background(), &recordingSink{}) }()

	time.Sleep(200 * time.Millisecond)
	suite.Require().NoError(relay.Close())

	select {
	case err := <-done:
		suite.NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("Consume did not return after Close")
	}
}

func TestRelayIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RelayIntegrationTestSuite))
}
