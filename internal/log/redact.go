package log

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MaskValue replaces sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeys are field keys whose values are never logged.
var sensitiveKeys = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"password":      true,
	"secret":        true,
	"token":         true,
	"credentials":   true,
}

// sensitivePatterns match values that look like credentials regardless of
// their key. Materials Project keys are 32 alphanumeric characters.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
}

// redactCore sanitizes fields and messages before they reach the wrapped
// core.
type redactCore struct {
	zapcore.Core
	secrets []string
}

func newRedactCore(core zapcore.Core, secrets []string) zapcore.Core {
	var s []string
	for _, v := range secrets {
		if v = strings.TrimSpace(v); v != "" {
			s = append(s, v)
		}
	}
	return &redactCore{Core: core, secrets: s}
}

func (c *redactCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactCore{Core: c.Core.With(c.sanitize(fields)), secrets: c.secrets}
}

func (c *redactCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c *redactCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	e.Message = c.mask(e.Message)
	return c.Core.Write(e, c.sanitize(fields))
}

func (c *redactCore) sanitize(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		out[i] = c.sanitizeField(f)
	}
	return out
}

func (c *redactCore) sanitizeField(f zapcore.Field) zapcore.Field {
	if isSensitiveKey(f.Key) {
		return zap.String(f.Key, MaskValue)
	}
	switch f.Type {
	case zapcore.StringType:
		if isSensitiveValue(f.String) {
			return zap.String(f.Key, MaskValue)
		}
		if masked := c.mask(f.String); masked != f.String {
			return zap.String(f.Key, masked)
		}
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok && err != nil {
			if msg := err.Error(); c.mask(msg) != msg {
				return zap.String(f.Key, c.mask(msg))
			}
		}
	}
	return f
}

// mask replaces every configured secret inside s.
func (c *redactCore) mask(s string) string {
	for _, secret := range c.secrets {
		s = strings.ReplaceAll(s, secret, MaskValue)
	}
	return s
}

func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if sensitiveKeys[k] {
		return true
	}
	for _, kw := range []string{"password", "secret", "token", "credential"} {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

func isSensitiveValue(v string) bool {
	for _, p := range sensitivePatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}
