package config

import (
	"os"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
)

var InfluxDB *InfluxClient

type InfluxClient struct {
	client   client.Client
	database string
}

func NewInfluxDB() error {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     os.Getenv("INFLUXDB_URL"),
		Username: os.Getenv("INFLUXDB_USERNAME"),
		Password: os.Getenv("INFLUXDB_PASSWORD"),
	})

	if err != nil {
		return err
	}

	InfluxDB = NewInfluxClient(c, os.Getenv("INFLUXDB_DATABASE"))

	return nil
}

func NewInfluxClient(c client.Client, database string) *InfluxClient {
	return &InfluxClient{
		client:   c,
		database: database,
	}
}

func (c *InfluxClient) NewBatchPoints() (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database:  c.database,
		Precision: "ns",
	})
}

// NewPoint writes a single point stamped at at.
func (c *InfluxClient) NewPoint(name string, tags map[string]string, fields map[string]interface{}, at time.Time) error {
	bp, err := c.NewBatchPoints()
	if err != nil {
		return err
	}

	point, err := client.NewPoint(name, tags, fields, at)
	if err != nil {
		return err
	}

	bp.AddPoint(point)

	return c.client.Write(bp)
}

func (c *InfluxClient) Close() error {
	return c.client.Close()
}
