package logging

import (
	"time"

	"github.com/opennml/gonml/pkg/nml"
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

func Float64(key string, value float64) Field {
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

// Field helpers for topology objects
func Component(name string) Field {
	return String("component", name)
}

func ObjectID(id nml.ObjectID) Field {
	return String("object_id", id.String())
}

func Kind(k nml.Kind) Field {
	return String("kind", k.String())
}

func Operation(op string) Field {
	return String("operation", op)
}

func Topic(topic string) Field {
	return String("topic", topic)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
