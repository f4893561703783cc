package messaging

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	url, dialConfig := rabbitMQDialConfig(driverConfig)
	conn, err := amqp091.DialConfig(url, dialConfig)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}
	log.Printf("Successfully connected to rabbitMQ vhost %s", dialConfig.Vhost)
	return conn
}

// rabbitMQDialConfig names the connection after the service so it can be
// spotted in the broker's management UI.
func rabbitMQDialConfig(driverConfig *config.DriverConfig) (string, amqp091.Config) {
	url := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)

	vhost := driverConfig.RabbitMQ.Vhost
	if vhost == "" {
		vhost = "/"
	}
	heartbeat := time.Duration(driverConfig.RabbitMQ.HeartbeatInSeconds) * time.Second
	if heartbeat <= 0 {
		heartbeat = 10 * time.Second
	}

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(constvars.ServiceName)

	return url, amqp091.Config{
		Vhost:      vhost,
		Heartbeat:  heartbeat,
		Locale:     "en_US",
		Properties: properties,
	}
}
