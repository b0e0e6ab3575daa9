package stream

import (
	"fmt"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const flushTimeoutMs = 5000

type KafkaStream struct {
	kafkaServers string

	mu       sync.Mutex
	producer *kafka.Producer
}

func New(kafkaServers string) *KafkaStream {
	return &KafkaStream{
		kafkaServers: kafkaServers,
	}
}

func (st *KafkaStream) getProducer() (*kafka.Producer, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.producer == nil {
		producer, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": st.kafkaServers})
		if err != nil {
			return nil, err
		}
		st.producer = producer
	}

	return st.producer, nil
}

// ProduceMessage sends value to topic and waits for the delivery report.
func (st *KafkaStream) ProduceMessage(topic, key string, value []byte) error {
	producer, err := st.getProducer()
	if err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	if err := producer.Produce(msg, delivery); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}

	e := <-delivery
	m, ok := e.(*kafka.Message)
	if !ok {
		return fmt.Errorf("unexpected delivery event for %s: %v", topic, e)
	}
	if m.TopicPartition.Error != nil {
		return fmt.Errorf("deliver to %s: %w", topic, m.TopicPartition.Error)
	}

	return nil
}

// Publish encodes event and produces it keyed by its subject.
func (st *KafkaStream) Publish(topic string, event *Event) error {
	value, err := event.Encode()
	if err != nil {
		return err
	}

	return st.ProduceMessage(topic, event.Subject, value)
}

type StreamConsumer struct {
	GroupId string
	Topic   string
}

func (st *KafkaStream) CreateConsumer(consumerStruct *StreamConsumer) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": st.kafkaServers,
		"group.id":          consumerStruct.GroupId,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(consumerStruct.Topic, nil); err != nil {
		consumer.Close()
		return nil, err
	}

	return consumer, nil
}

// Close flushes pending deliveries and releases the producer.
func (st *KafkaStream) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.producer != nil {
		st.producer.Flush(flushTimeoutMs)
		st.producer.Close()
		st.producer = nil
	}
}
