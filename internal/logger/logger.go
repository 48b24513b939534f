package logger

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a key/value wrapper around a sugared zap logger. Values under
// credential-like keys are redacted and credentials embedded in logged URLs are
// scrubbed before anything reaches the sink.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
	level         *zap.AtomicLevel
}

// New builds a logger for the given mode. "prod" and "production" emit JSON at info
// level; anything else is the human-readable development encoder at debug level.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	level := cfg.Level
	return &Logger{SugaredLogger: zapLogger.Sugar(), level: &level}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// EnableDebug lowers the level to debug without changing the encoding, so
// --verbose in production mode still writes JSON.
func (l *Logger) EnableDebug() {
	if l.level != nil {
		l.level.SetLevel(zapcore.DebugLevel)
	}
}

// Level reports the current minimum level.
func (l *Logger) Level() zapcore.Level {
	if l.level == nil {
		return l.SugaredLogger.Level()
	}
	return l.level.Level()
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.SugaredLogger.Debugw(msg, sanitizeKVs(kv)...) }

func (l *Logger) Info(msg string, kv ...interface{}) { l.SugaredLogger.Infow(msg, sanitizeKVs(kv)...) }

func (l *Logger) Warn(msg string, kv ...interface{}) { l.SugaredLogger.Warnw(msg, sanitizeKVs(kv)...) }

func (l *Logger) Error(msg string, kv ...interface{}) { l.SugaredLogger.Errorw(msg, sanitizeKVs(kv)...) }

// With returns a child logger sharing the level.
func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(sanitizeKVs(kv)...), level: l.level}
}

const redacted = "[REDACTED]"

var secretKeyParts = []string{"authorization", "api_key", "apikey", "token", "secret", "password", "cookie"}

func isSecretKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, part := range secretKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key, _ := kv[i].(string)
		val := kv[i+1]
		if isSecretKey(key) {
			val = redacted
		} else if str, ok := val.(string); ok {
			val = scrubURL(str)
		}
		out = append(out, kv[i], val)
	}
	return out
}

// scrubURL removes userinfo passwords and credential query parameters from s
// when it is an absolute URL. Other strings are returned unchanged.
func scrubURL(s string) string {
	if !strings.Contains(s, "://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return s
	}
	changed := false
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
		changed = true
	}
	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			if isSecretKey(k) {
				q.Set(k, "xxxxx")
				changed = true
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}
	if !changed {
		return s
	}
	return u.String()
}
