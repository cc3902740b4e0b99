package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

// CheckID correlates every line logged for one table check
func CheckID(id string) Field {
	return String("check_id", id)
}

func Query(q string) Field {
	return String("query", q)
}

func Policy(p string) Field {
	return String("policy", p)
}

func Column(name string) Field {
	return String("column", name)
}

func RowIndex(i int) Field {
	return Int("row", i)
}

func Rows(n int) Field {
	return Int("rows", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
