package store

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/core/occupancy"
	"github.com/opendensity/density/infra/logger"
)

// InfluxSource reads occupancy dumps from an InfluxDB bucket. Dumps are
// expected as points of the configured measurement with the client count as
// the single field and group/parent identity as tags.
type InfluxSource struct {
	client   influxdb2.Client
	queryAPI api.QueryAPI
	cfg      InfluxConfig
	opts     []occupancy.Option
	log      logger.Logger
}

// NewInflux creates a source for the given InfluxDB endpoint and verifies it
// is reachable. The data source is fail-fast, so an unhealthy server fails
// construction instead of degrading to an empty table.
func NewInflux(cfg InfluxConfig, opts ...occupancy.Option) (*InfluxSource, error) {
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 10 * time.Second}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("influx health check: %w", err)
	}
	if health.Status != "pass" {
		client.Close()
		return nil, fmt.Errorf("influx health status: %s", health.Status)
	}

	return &InfluxSource{
		client:   client,
		queryAPI: client.QueryAPI(cfg.Org),
		cfg:      cfg,
		opts:     opts,
		log:      logger.New("influx-source"),
	}, nil
}

// Load issues one flux query over the full bucket history and materializes
// the table.
func (s *InfluxSource) Load(ctx context.Context) (*occupancy.Table, error) {
	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: 0)
  |> filter(fn: (r) => r._measurement == %q and r._field == "client_count")`,
		s.cfg.Bucket, s.cfg.Measurement)

	result, err := s.queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("query occupancy: %w", err)
	}
	defer func() {
		if cerr := result.Close(); cerr != nil {
			s.log.Warnf("close query result: %v", cerr)
		}
	}()

	var records []model.Record
	for result.Next() {
		row := result.Record()
		rec := model.Record{
			DumpTime:   row.Time(),
			GroupName:  tagString(row.ValueByKey("group_name")),
			ParentName: tagString(row.ValueByKey("parent_name")),
		}
		if rec.GroupID, err = tagInt(row.ValueByKey("group_id")); err != nil {
			return nil, fmt.Errorf("point at %s: group_id: %w", row.Time().Format(time.RFC3339), err)
		}
		if rec.ParentID, err = tagInt(row.ValueByKey("parent_id")); err != nil {
			return nil, fmt.Errorf("point at %s: parent_id: %w", row.Time().Format(time.RFC3339), err)
		}
		if rec.ClientCount, err = fieldInt(row.Value()); err != nil {
			return nil, fmt.Errorf("point at %s: client_count: %w", row.Time().Format(time.RFC3339), err)
		}
		records = append(records, rec)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read occupancy points: %w", err)
	}
	return occupancy.New(records, s.opts...)
}

// Close shuts down the underlying HTTP client.
func (s *InfluxSource) Close() { s.client.Close() }

func tagString(v any) string {
	s, _ := v.(string)
	return s
}

func tagInt(v any) (int64, error) {
	switch t := v.(type) {
	case string:
		return strconv.ParseInt(t, 10, 64)
	case int64:
		return t, nil
	default:
		return 0, fmt.Errorf("unexpected tag type %T", v)
	}
}

func fieldInt(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("unexpected field type %T", v)
	}
}
