package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"infla/internal/config"
	"infla/internal/model"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.WarehouseConfig
		want string
	}{
		{
			name: "full settings",
			cfg: config.WarehouseConfig{
				Host: "db.internal", Port: 5432, Database: "inflation",
				User: "reader", Password: "hunter2", SSLMode: "require",
			},
			want: "host=db.internal port=5432 dbname=inflation user=reader password=hunter2 sslmode=require",
		},
		{
			name: "password omitted when empty",
			cfg: config.WarehouseConfig{
				Host: "localhost", Port: 5433, Database: "inflation", User: "reader",
			},
			want: "host=localhost port=5433 dbname=inflation user=reader sslmode=disable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dsn(tt.cfg); got != tt.want {
				t.Errorf("dsn() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_NotConfigured(t *testing.T) {
	cfgs := []config.WarehouseConfig{
		{},
		{Host: "db.internal", User: "reader"},
		{Host: "db.internal", Database: "inflation"},
		{Database: "inflation", User: "reader"},
	}
	for _, cfg := range cfgs {
		if _, err := Open(context.Background(), cfg); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("Open(%+v) = %v, want ErrNotConfigured", cfg, err)
		}
	}
}

func TestRowValidation(t *testing.T) {
	date := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)

	good := model.InflationRecord{CountryCode: "DE", ProductCode: "CP00", Date: date}
	if !validInflation(good) {
		t.Error("complete inflation row rejected")
	}
	for _, bad := range []model.InflationRecord{
		{ProductCode: "CP00", Date: date},
		{CountryCode: "DE", Date: date},
		{CountryCode: "DE", ProductCode: "CP00"},
	} {
		if validInflation(bad) {
			t.Errorf("malformed inflation row accepted: %+v", bad)
		}
	}

	if !validEconomic(model.EconomicRecord{CountryCode: "DE", Year: 2022}) {
		t.Error("complete economic row rejected")
	}
	if validEconomic(model.EconomicRecord{Year: 2022}) || validEconomic(model.EconomicRecord{CountryCode: "DE"}) {
		t.Error("malformed economic row accepted")
	}

	if !validPrice(model.ProductPriceRecord{CountryCode: "DE", ProductName: "Arla Milk 1", Date: date}) {
		t.Error("complete price row rejected")
	}
	if validPrice(model.ProductPriceRecord{CountryCode: "DE", Date: date}) {
		t.Error("price row without a product name accepted")
	}
}
