package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/runway-dev/runway/internal/model"
)

// ForecastHeader is the CSV header for exported forecasts.
const ForecastHeader = "month,inflow,outflow,net,balance"

// WriteForecast writes projected months with a header row.
func WriteForecast(w io.Writer, points []model.ForecastPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ForecastHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range points {
		if err := cw.Write(MarshalForecastPoint(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalForecastPoint converts a ForecastPoint to a CSV row.
func MarshalForecastPoint(p model.ForecastPoint) []string {
	return []string{
		string(p.Month),
		p.Inflow.StringFixed(2),
		p.Outflow.StringFixed(2),
		p.Net.StringFixed(2),
		p.Balance.StringFixed(2),
	}
}
