package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const healthPass = `{"name":"influxdb","message":"ready","status":"pass","version":"2.7"}`

const occupancyCSV = `#datatype,string,long,dateTime:RFC3339,long,string,string,string,string,string,string
#group,false,false,false,false,true,true,true,true,true,true
#default,_result,,,,,,,,,
,result,table,_time,_value,_field,_measurement,group_id,group_name,parent_id,parent_name
,,0,2025-03-03T09:00:00Z,10,client_count,occupancy,152,Butler Library 2,146,Butler
,,0,2025-03-10T09:00:00Z,20,client_count,occupancy,152,Butler Library 2,146,Butler
,,1,2025-03-03T09:00:00Z,4,client_count,occupancy,153,Butler Library 3,146,Butler

`

func influxServer(t *testing.T, csv string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(healthPass))
		case "/api/v2/query":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(csv))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInfluxSourceLoad(t *testing.T) {
	srv := influxServer(t, occupancyCSV)

	src, err := NewInflux(InfluxConfig{
		URL: srv.URL, Token: "token", Org: "org", Bucket: "density", Measurement: "occupancy",
	})
	require.NoError(t, err)
	defer src.Close()

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"Butler Library 2", "Butler Library 3"}, table.Floors())

	counts, ok := table.Bucket("Butler Library 2", time.Monday, 9*3600)
	require.True(t, ok)
	assert.Equal(t, []int64{10, 20}, counts)
}

func TestInfluxSourceUnhealthyServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewInflux(InfluxConfig{URL: srv.URL, Org: "org", Bucket: "density"})
	assert.Error(t, err, "unreachable data source must fail construction")
}

func TestConfigValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.NoError(t, cfg.Validate())

	cfg.Driver = "influx"
	assert.Error(t, cfg.Validate(), "influx driver requires endpoint settings")

	cfg.Influx.URL = "http://localhost:8086"
	cfg.Influx.Org = "org"
	cfg.Influx.Bucket = "density"
	assert.NoError(t, cfg.Validate())

	cfg.Driver = "postgres"
	assert.Error(t, cfg.Validate())
}
