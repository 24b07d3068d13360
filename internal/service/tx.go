package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const formatoFecha = "2006-01-02"

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// parseFecha parses a YYYY-MM-DD date, normalized to midnight UTC.
func parseFecha(s string) (time.Time, error) {
	f, err := time.Parse(formatoFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	return f, nil
}

// parseFechas parses a list of dates, preserving order.
func parseFechas(ss []string) ([]time.Time, error) {
	fechas := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		f, err := parseFecha(s)
		if err != nil {
			return nil, err
		}
		fechas = append(fechas, f)
	}
	return fechas, nil
}

// rangoFechas expands [desde, hasta] into one entry per day, inclusive.
func rangoFechas(desde, hasta time.Time) []time.Time {
	var fechas []time.Time
	for f := desde; !f.After(hasta); f = f.AddDate(0, 0, 1) {
		fechas = append(fechas, f)
	}
	return fechas
}

// hoy returns today's date truncated to midnight UTC.
func hoy() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
