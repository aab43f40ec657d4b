package services

import (
	"fmt"
	"strings"
	"time"
)

// DataLayout equivale a yyyy-MM-dd HH:mm:ss.
const DataLayout = "2006-01-02 15:04:05"

func FormatData(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DataLayout)
}

// ParseData interpreta o texto no fuso configurado. Nunca devolve valor padrão em caso de erro.
func ParseData(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	// time.Parse aceita fração de segundo mesmo fora do layout
	if len(s) != len(DataLayout) {
		return time.Time{}, fmt.Errorf("data %q fora do formato %s", s, DataLayout)
	}
	return time.ParseInLocation(DataLayout, s, loc)
}
