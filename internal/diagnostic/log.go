package diagnostic

import (
	"go.uber.org/zap"
)

// LogTo writes every diagnostic to logger: notes at debug, warnings at warn,
// errors at error level.
func LogTo(logger *zap.Logger, d *Diagnostics) {
	for _, diag := range d.All() {
		fields := []zap.Field{zap.String("code", diag.Code)}
		if diag.Target != "" {
			fields = append(fields, zap.String("target", diag.Target))
		}

		if diag.FieldPath != "" {
			fields = append(fields, zap.String("field", diag.FieldPath))
		}

		if diag.Pos.IsValid() {
			fields = append(fields, zap.Stringer("pos", diag.Pos))
		}

		if len(diag.Suggestions) > 0 {
			fields = append(fields, zap.Strings("suggestions", diag.Suggestions))
		}

		switch diag.Severity {
		case SeverityError:
			logger.Error(diag.Message, fields...)
		case SeverityWarning:
			logger.Warn(diag.Message, fields...)
		default:
			logger.Debug(diag.Message, fields...)
		}
	}
}
