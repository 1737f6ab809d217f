package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matchpulse/season-compare/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const (
	mirrorInstrumentation = "season-compare/internal/platform/logging"
	mirrorHealthPath      = "/healthz"
	mirrorValueDepth      = 3
)

// newOTelLogMirror adapts the platform logger's mirror hook onto the
// global OTel logger so every zap record also reaches the OTLP export
// pipeline. Health-probe request logs stay local.
func newOTelLogMirror(serviceVersion string) logging.MirrorFunc {
	sink := otelglobal.Logger(
		mirrorInstrumentation,
		otellog.WithInstrumentationVersion(serviceVersion),
	)

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if mirrorDropsRecord(msg, args) {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}

		severity := mirrorSeverity(level)
		if !sink.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		now := time.Now().UTC()
		var record otellog.Record
		record.SetTimestamp(now)
		record.SetObservedTimestamp(now)
		record.SetSeverity(severity)
		record.SetSeverityText(strings.ToUpper(level.String()))
		record.SetEventName(msg)
		record.SetBody(otellog.StringValue(msg))
		if attrs := mirrorAttrs(args); len(attrs) > 0 {
			record.AddAttributes(attrs...)
		}

		sink.Emit(ctx, record)
	}
}

// mirrorDropsRecord reports whether a record is probe noise: the request
// log the HTTP middleware emits for the health endpoint.
func mirrorDropsRecord(msg string, args []any) bool {
	if msg != "http_request" {
		return false
	}
	for rest := args; len(rest) >= 2; rest = rest[2:] {
		key, ok := rest[0].(string)
		if !ok || key != "http_path" {
			continue
		}
		path, ok := rest[1].(string)
		return ok && path == mirrorHealthPath
	}
	return false
}

// mirrorAttrs converts the logger's key-value varargs into OTel
// attributes. Non-string keys get a positional name and a trailing
// valueless key becomes an empty attribute, mirroring how zap's sugared
// calls tolerate malformed pairs.
func mirrorAttrs(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}

	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key := "arg_" + strconv.Itoa(i/2)
		if k, ok := args[i].(string); ok && strings.TrimSpace(k) != "" {
			key = k
		}
		if i+1 >= len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: mirrorValue(args[i+1], 0)})
	}
	return attrs
}

func mirrorSeverity(level zapcore.Level) otellog.Severity {
	switch {
	case level <= zapcore.DebugLevel:
		return otellog.SeverityDebug
	case level == zapcore.InfoLevel:
		return otellog.SeverityInfo
	case level == zapcore.WarnLevel:
		return otellog.SeverityWarn
	case level >= zapcore.DPanicLevel:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityError
	}
}

// mirrorValue maps an arbitrary log argument to an OTel value. Recursion
// through pointers, slices, and maps is capped at mirrorValueDepth;
// anything deeper is stringified.
func mirrorValue(value any, depth int) otellog.Value {
	if depth >= mirrorValueDepth {
		return otellog.StringValue(fmt.Sprint(value))
	}
	if value == nil {
		return otellog.Value{}
	}
	if v, ok := scalarMirrorValue(value); ok {
		return v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return mirrorValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			return otellog.BytesValue(out)
		}
		items := make([]otellog.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, mirrorValue(rv.Index(i).Interface(), depth+1))
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return otellog.StringValue(fmt.Sprint(value))
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		kvs := make([]otellog.KeyValue, 0, len(keys))
		for _, key := range keys {
			kvs = append(kvs, otellog.KeyValue{
				Key:   key.String(),
				Value: mirrorValue(rv.MapIndex(key).Interface(), depth+1),
			})
		}
		return otellog.MapValue(kvs...)
	default:
		return otellog.StringValue(fmt.Sprint(value))
	}
}

func scalarMirrorValue(value any) (otellog.Value, bool) {
	switch v := value.(type) {
	case string:
		return otellog.StringValue(v), true
	case bool:
		return otellog.BoolValue(v), true
	case int:
		return otellog.IntValue(v), true
	case int8:
		return otellog.Int64Value(int64(v)), true
	case int16:
		return otellog.Int64Value(int64(v)), true
	case int32:
		return otellog.Int64Value(int64(v)), true
	case int64:
		return otellog.Int64Value(v), true
	case uint:
		return unsignedMirrorValue(uint64(v)), true
	case uint8:
		return otellog.Int64Value(int64(v)), true
	case uint16:
		return otellog.Int64Value(int64(v)), true
	case uint32:
		return otellog.Int64Value(int64(v)), true
	case uint64:
		return unsignedMirrorValue(v), true
	case float32:
		return otellog.Float64Value(float64(v)), true
	case float64:
		return otellog.Float64Value(v), true
	case []byte:
		cp := append([]byte(nil), v...)
		return otellog.BytesValue(cp), true
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano)), true
	case time.Duration:
		return otellog.StringValue(v.String()), true
	case error:
		return otellog.StringValue(v.Error()), true
	case fmt.Stringer:
		return otellog.StringValue(v.String()), true
	}
	return otellog.Value{}, false
}

func unsignedMirrorValue(v uint64) otellog.Value {
	if v > math.MaxInt64 {
		return otellog.StringValue(strconv.FormatUint(v, 10))
	}
	return otellog.Int64Value(int64(v))
}
