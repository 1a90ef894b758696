package mq_client

import (
	"fmt"
	"io/ioutil"
	"os"
	"reflect"

	"github.com/streadway/amqp"
	"gopkg.in/yaml.v2"
)

var AMQPCfg *MQClientConfig

func CreateAMQP() (*amqp.Connection, error) {
	if err := LoadConfig("config/amqp.yml"); err != nil {
		return nil, err
	}

	rabbitmq_username := os.Getenv("RABBITMQ_USERNAME")
	rabbitmq_password := os.Getenv("RABBITMQ_PASSWORD")
	rabbitmq_host := os.Getenv("RABBITMQ_HOST")
	rabbitmq_port := os.Getenv("RABBITMQ_PORT")

	return amqp.Dial("amqp://" + rabbitmq_username + ":" + rabbitmq_password + "@" + rabbitmq_host + ":" + rabbitmq_port)
}

func LoadConfig(path string) error {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	c := &MQClientConfig{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return err
	}

	AMQPCfg = c

	return nil
}

func GetPrefetchCount(id string) int {
	if channel, ok := FindElementStruct(&AMQPCfg.Channel, "yaml", id).(Channel); ok {
		return channel.Prefetch
	}

	return 0
}

func GetBinding(id string) (Binding, error) {
	binding, ok := FindElementStruct(&AMQPCfg.Binding, "yaml", id).(Binding)
	if !ok {
		return Binding{}, fmt.Errorf("amqp binding %q is not configured", id)
	}

	return binding, nil
}

func GetBindingQueue(id string) (Queue, error) {
	binding, err := GetBinding(id)
	if err != nil {
		return Queue{}, err
	}

	queue, ok := FindElementStruct(&AMQPCfg.Queue, "yaml", binding.Queue).(Queue)
	if !ok {
		return Queue{}, fmt.Errorf("amqp queue %q is not configured", binding.Queue)
	}

	return queue, nil
}

func GetExchange(id string) (Exchange, error) {
	exchange, ok := FindElementStruct(&AMQPCfg.Exchange, "yaml", id).(Exchange)
	if !ok {
		return Exchange{}, fmt.Errorf("amqp exchange %q is not configured", id)
	}

	return exchange, nil
}

// FindElementStruct returns the field of the struct i points to whose tag_name tag equals tag_value.
func FindElementStruct(i interface{}, tag_name string, tag_value string) interface{} {
	e := reflect.ValueOf(i).Elem()

	for i := 0; i < e.NumField(); i++ {
		if tag_value == e.Type().Field(i).Tag.Get(tag_name) {
			return e.Field(i).Interface()
		}
	}

	return nil
}
